package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaybeBinary is either text or binary data. Text serializes as a JSON
// string while binary serializes using the format described by
// https://github.com/ooni/spec/blob/master/data-formats/df-001-httpt.md#maybebinarydata.
//
// The zero value is the empty text.
type MaybeBinary struct {
	data   []byte
	binary bool
}

// Text constructs a textual [MaybeBinary].
func Text(s string) MaybeBinary {
	return MaybeBinary{data: []byte(s)}
}

// Binary constructs a binary [MaybeBinary].
func Binary(b []byte) MaybeBinary {
	return MaybeBinary{data: b, binary: true}
}

// NewMaybeBinary returns [Text] when data is valid UTF-8 and [Binary] otherwise.
func NewMaybeBinary(data []byte) MaybeBinary {
	if utf8.Valid(data) {
		return MaybeBinary{data: data}
	}
	return Binary(data)
}

// IsBinary returns whether this value is tagged as binary.
func (mb MaybeBinary) IsBinary() bool {
	return mb.binary
}

// Bytes returns the underlying bytes regardless of the tag.
func (mb MaybeBinary) Bytes() []byte {
	return mb.data
}

// String returns the underlying bytes as a string regardless of the tag.
func (mb MaybeBinary) String() string {
	return string(mb.data)
}

// Len returns the length in bytes.
func (mb MaybeBinary) Len() int {
	return len(mb.data)
}

// maybeBinaryRepr is the wire representation of binary data.
type maybeBinaryRepr struct {
	Data   []byte `json:"data"`
	Format string `json:"format"`
}

// ErrInvalidBinaryDataFormat is the error returned when unmarshaling
// binary data whose "format" is not "base64".
var ErrInvalidBinaryDataFormat = errors.New("model: invalid binary data format")

var (
	_ json.Marshaler   = MaybeBinary{}
	_ json.Unmarshaler = &MaybeBinary{}
)

// MarshalJSON implements json.Marshaler. Text is HTML-escaped like any
// other string encoding/json emits, so "<" becomes "\u003c". Decoding
// yields the original bytes.
func (mb MaybeBinary) MarshalJSON() ([]byte, error) {
	if !mb.binary {
		return json.Marshal(string(mb.data))
	}
	return json.Marshal(&maybeBinaryRepr{Data: mb.data, Format: "base64"})
}

// UnmarshalJSON implements json.Unmarshaler.
func (mb *MaybeBinary) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(raw, []byte("null")):
		*mb = MaybeBinary{}
		return nil

	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*mb = Text(s)
		return nil

	default:
		var repr maybeBinaryRepr
		if err := json.Unmarshal(raw, &repr); err != nil {
			return err
		}
		if repr.Format != "base64" {
			return fmt.Errorf("%w: '%s'", ErrInvalidBinaryDataFormat, repr.Format)
		}
		*mb = Binary(repr.Data)
		return nil
	}
}
