package system

import (
	"bytes"
	"testing"
)

func TestCpmWriteChar(t *testing.T) {
	var out bytes.Buffer
	m := NewCpm(&out)

	if m.HandleBdos(BdosWriteChar, 'X', 0) {
		t.Error("C_WRITE should not request termination")
	}
	if out.String() != "X" {
		t.Errorf("C_WRITE: got %q, want %q", out.String(), "X")
	}
}

func TestCpmWriteString(t *testing.T) {
	var out bytes.Buffer
	m := NewCpm(&out)
	copy(m.Mem[0x0200:], []byte("hello$garbage"))

	m.HandleBdos(BdosWriteString, 0, 0x0200)

	if out.String() != "hello" {
		t.Errorf("C_WRITESTR: got %q, want %q", out.String(), "hello")
	}
}

func TestCpmTerminate(t *testing.T) {
	m := NewCpm(&bytes.Buffer{})
	if !m.HandleBdos(BdosTerminate, 0, 0) {
		t.Error("P_TERMCPM should request termination")
	}
}
