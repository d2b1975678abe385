package trace

import (
	"path/filepath"
	"testing"

	"github.com/retrogo/z80emu/pkg/cpu"
)

type fakeBus struct{ mem [65536]uint8 }

func (b *fakeBus) ReadMem(addr uint16) uint8       { return b.mem[addr] }
func (b *fakeBus) WriteMem(addr uint16, val uint8) { b.mem[addr] = val }
func (b *fakeBus) In(port uint16) uint8            { return 0xFF }
func (b *fakeBus) Out(port uint16, val uint8)      {}

func TestSnapshotSaveLoadRoundTrip(t *testing.T) {
	bus := &fakeBus{}
	bus.mem[0] = 0xAA
	c := cpu.New(bus)
	c.A = 0x42
	c.PC = 0x1234

	path := filepath.Join(t.TempDir(), "snap.gob")
	if err := Save(path, c, bus.mem[:]); err != nil {
		t.Fatalf("Save: %v", err)
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	restored := &fakeBus{}
	copy(restored.mem[:], snap.Mem)
	c2 := cpu.New(restored)
	snap.Restore(c2)

	if c2.A != 0x42 || c2.PC != 0x1234 {
		t.Errorf("Restore: A=%#02x PC=%#04x, want A=0x42 PC=0x1234", c2.A, c2.PC)
	}
	if c2.Bus != restored {
		t.Error("Restore must keep the caller's own Bus, not one from the snapshot")
	}
	if restored.mem[0] != 0xAA {
		t.Error("snapshot should preserve the memory image")
	}
}
