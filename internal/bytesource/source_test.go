package bytesource

import (
	"io"
	"testing"
)

func TestSource_Read(t *testing.T) {
	s := New([]byte("abcdef"))

	buf := make([]byte, 4)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 4 || string(buf[:n]) != "abcd" {
		t.Errorf("Read() = %d %q, want 4 %q", n, buf[:n], "abcd")
	}
	if got := s.Pos(); got != 4 {
		t.Errorf("Pos() = %d, want 4", got)
	}

	n, err = s.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != 2 || string(buf[:n]) != "ef" {
		t.Errorf("Read() = %d %q, want 2 %q", n, buf[:n], "ef")
	}

	if _, err := s.Read(buf); err != io.EOF {
		t.Errorf("Read() at end error = %v, want io.EOF", err)
	}
}

func TestSource_ReadByte(t *testing.T) {
	s := New([]byte{0x01, 0x02})

	for i, want := range []byte{0x01, 0x02} {
		b, err := s.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte() #%d error = %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte() #%d = %#x, want %#x", i, b, want)
		}
	}

	if _, err := s.ReadByte(); err != io.EOF {
		t.Errorf("ReadByte() at end error = %v, want io.EOF", err)
	}
	if got := s.Pos(); got != 2 {
		t.Errorf("Pos() = %d, want 2", got)
	}
}

func TestSource_Reset(t *testing.T) {
	s := New([]byte("old"))
	if _, err := s.ReadByte(); err != nil {
		t.Fatalf("ReadByte() error = %v", err)
	}

	s.Reset([]byte("new"))
	if got := s.Pos(); got != 0 {
		t.Errorf("Pos() after Reset = %d, want 0", got)
	}

	b, err := s.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte() error = %v", err)
	}
	if b != 'n' {
		t.Errorf("ReadByte() = %q, want %q", b, byte('n'))
	}
}
