// Package iox contains io extensions.
package iox

import (
	"bufio"
	"bytes"
	"context"
	"io"
)

// ReadAllContext is like io.ReadAll but reads r in a background goroutine
// and returns earlier if the context is done. In such a case the goroutine
// keeps reading until r returns, so close the body bound to r, if possible.
func ReadAllContext(ctx context.Context, r io.Reader) ([]byte, error) {
	datach, errch := make(chan []byte, 1), make(chan error, 1) // buffers
	go func() {
		data, err := io.ReadAll(r)
		if err != nil {
			errch <- err
			return
		}
		datach <- data
	}()
	select {
	case data := <-datach:
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errch:
		return nil, err
	}
}

// MaxLineSize is the maximum size of a line read by [ForEachLine].
const MaxLineSize = 1 << 24

// ForEachLine calls fn for each nonblank line of r. The line number
// starts from one and counts blank lines. We stop at the first error
// returned by fn or when the context is done.
func ForEachLine(ctx context.Context, r io.Reader, fn func(lineno int, line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<16), MaxLineSize)
	for lineno := 1; scanner.Scan(); lineno++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) <= 0 {
			continue
		}
		if err := fn(lineno, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
