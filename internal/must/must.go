// Package must contains functions that panic on error.
package must

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/ooni/wcanalysis/internal/runtimex"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// Stdio is the file name meaning stdin or stdout.
const Stdio = "-"

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// OpenInput is like [os.Open] but calls [runtimex.PanicOnError] on
// failure. The [Stdio] name means the standard input.
func OpenInput(name string) io.ReadCloser {
	if name == Stdio {
		return io.NopCloser(os.Stdin)
	}
	fp, err := os.Open(name)
	runtimex.PanicOnError(err, "os.Open failed")
	return fp
}

// CreateOutput is like [lockedfile.Create] but calls [runtimex.PanicOnError]
// on failure. The [Stdio] name means the standard output.
func CreateOutput(name string) io.WriteCloser {
	if name == Stdio {
		return nopWriteCloser{os.Stdout}
	}
	fp, err := lockedfile.Create(name)
	runtimex.PanicOnError(err, "lockedfile.Create failed")
	return fp
}

// Close is like [io.Closer.Close] but calls
// [runtimex.PanicOnError] on failure.
func Close(c io.Closer) {
	err := c.Close()
	runtimex.PanicOnError(err, "Close failed")
}

// Fprintf is like [fmt.Fprintf] but calls
// [runtimex.PanicOnError] on failure.
func Fprintf(w io.Writer, format string, v ...any) {
	_, err := fmt.Fprintf(w, format, v...)
	runtimex.PanicOnError(err, "fmt.Fprintf failed")
}

// MarshalJSON is like [json.Marshal] but calls
// [runtimex.PanicOnError] on failure.
func MarshalJSON(v any) []byte {
	data, err := json.Marshal(v)
	runtimex.PanicOnError(err, "json.Marshal failed")
	return data
}

// MarshalAndIndentJSON is like [json.MarshalIndent] but calls
// [runtimex.PanicOnError] on failure.
func MarshalAndIndentJSON(v any, prefix string, indent string) []byte {
	data, err := json.MarshalIndent(v, prefix, indent)
	runtimex.PanicOnError(err, "json.MarshalIndent failed")
	return data
}

// UnmarshalJSON is like [json.Unmarshal] but calls
// [runtimex.PanicOnError] on failure.
func UnmarshalJSON(data []byte, v any) {
	err := json.Unmarshal(data, v)
	runtimex.PanicOnError(err, "json.Unmarshal failed")
}

// Listen is like [net.Listen] but calls
// [runtimex.PanicOnError] on failure.
func Listen(network string, address string) net.Listener {
	listener, err := net.Listen(network, address)
	runtimex.PanicOnError(err, "net.Listen failed")
	return listener
}
