package iox

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type errReader struct {
	err error
}

func (r *errReader) Read(b []byte) (int, error) {
	return 0, r.err
}

type blockingReader struct {
	ch chan struct{}
}

func (r *blockingReader) Read(b []byte) (int, error) {
	<-r.ch
	return 0, io.EOF
}

func TestReadAllContext(t *testing.T) {
	t.Run("on success", func(t *testing.T) {
		data, err := ReadAllContext(context.Background(), strings.NewReader("antani"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "antani" {
			t.Fatal("unexpected data", string(data))
		}
	})

	t.Run("on failure", func(t *testing.T) {
		expected := errors.New("mocked error")
		data, err := ReadAllContext(context.Background(), &errReader{expected})
		if !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
		if len(data) != 0 {
			t.Fatal("expected no data")
		}
	})

	t.Run("with canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := &blockingReader{ch: make(chan struct{})}
		defer close(r.ch)
		data, err := ReadAllContext(ctx, r)
		if !errors.Is(err, context.Canceled) {
			t.Fatal("unexpected error", err)
		}
		if len(data) != 0 {
			t.Fatal("expected no data")
		}
	})
}

func TestForEachLine(t *testing.T) {
	type line struct {
		Lineno int
		Data   string
	}

	t.Run("skips blank lines", func(t *testing.T) {
		var got []line
		input := "{}\n\n  \n{\"a\": 1}\r\n"
		err := ForEachLine(context.Background(), strings.NewReader(input), func(lineno int, data []byte) error {
			got = append(got, line{lineno, string(data)})
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		expect := []line{{1, "{}"}, {4, `{"a": 1}`}}
		if diff := cmp.Diff(expect, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("stops on the first error", func(t *testing.T) {
		expected := errors.New("mocked error")
		var count int
		err := ForEachLine(context.Background(), strings.NewReader("a\nb\nc\n"), func(int, []byte) error {
			count++
			return expected
		})
		if !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
		if count != 1 {
			t.Fatal("unexpected count", count)
		}
	})

	t.Run("with canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := ForEachLine(ctx, strings.NewReader("a\n"), func(int, []byte) error {
			t.Fatal("should not be called")
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("with reader failure", func(t *testing.T) {
		expected := errors.New("mocked error")
		err := ForEachLine(context.Background(), &errReader{expected}, func(int, []byte) error {
			return nil
		})
		if !errors.Is(err, expected) {
			t.Fatal("unexpected error", err)
		}
	})
}
