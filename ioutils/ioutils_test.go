package ioutils

import (
	"bytes"
	"testing"
)

// Borrowed from https://github.com/docker/docker/blob/master/pkg/ioutils/writers_test.go

func TestWriteCloserWrapperClose(t *testing.T) {
	called := false
	writer := bytes.NewBuffer([]byte{})
	wrapper := NewWriteCloserWrapper(writer, func() error {
		called = true
		return nil
	})
	if err := wrapper.Close(); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatalf("writeCloserWrapper should have call the anonymous function.")
	}
}

func TestNopWriteCloser(t *testing.T) {
	writer := bytes.NewBuffer([]byte{})
	wrapper := NopWriteCloser(writer)
	if err := wrapper.Close(); err != nil {
		t.Fatal("NopWriteCloser always return nil on Close.")
	}
}

func TestCountingWriter(t *testing.T) {
	buf := bytes.NewBuffer([]byte{})
	cw := &CountingWriter{W: buf}

	if _, err := cw.Write([]byte("hello,")); err != nil {
		t.Fatal(err)
	}
	if _, err := cw.Write([]byte("world\n")); err != nil {
		t.Fatal(err)
	}

	if cw.N != 12 {
		t.Errorf("expected 12 bytes counted, got %d", cw.N)
	}
	if buf.String() != "hello,world\n" {
		t.Errorf("unexpected buffer contents: %q", buf.String())
	}
}
