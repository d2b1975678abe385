package cpu

import "testing"

// memBus is a flat 64 KiB RAM Bus whose In and Out read and write a
// 256-entry port array, used to drive whole-instruction tests against
// Step.
type memBus struct {
	mem  [65536]uint8
	ports [256]uint8
}

func (b *memBus) ReadMem(addr uint16) uint8      { return b.mem[addr] }
func (b *memBus) WriteMem(addr uint16, val uint8) { b.mem[addr] = val }
func (b *memBus) In(port uint16) uint8            { return b.ports[uint8(port)] }
func (b *memBus) Out(port uint16, val uint8)      { b.ports[uint8(port)] = val }

func (b *memBus) load(addr uint16, prog ...uint8) {
	for i, v := range prog {
		b.mem[int(addr)+i] = v
	}
}

func newTestCpu() (*Cpu, *memBus) {
	bus := &memBus{}
	c := New(bus)
	return c, bus
}

func TestCallRetRoundTrip(t *testing.T) {
	c, bus := newTestCpu()
	// CALL 0x0010; at 0x0010: LD A,0x42; RET
	bus.load(0x0000, 0xCD, 0x10, 0x00)
	bus.load(0x0010, 0x3E, 0x42, 0xC9)
	c.PC = 0x0000

	for i := 0; i < 3; i++ {
		c.Step()
	}

	if c.A != 0x42 {
		t.Errorf("after CALL/RET: A=%#02x, want 0x42", c.A)
	}
	if c.PC != 0x0003 {
		t.Errorf("after CALL/RET: PC=%#04x, want 0x0003", c.PC)
	}
	if c.SP != 0xFFFF {
		t.Errorf("after CALL/RET: SP=%#04x, want 0xFFFF (stack balanced)", c.SP)
	}
}

func TestLdirBlockCopy(t *testing.T) {
	c, bus := newTestCpu()
	bus.load(0x1000, 'H', 'e', 'l', 'l', 'o')
	// LD HL,0x1000; LD DE,0x2000; LD BC,5; LDIR
	bus.load(0x0000, 0x21, 0x00, 0x10, 0x11, 0x00, 0x20, 0x01, 0x05, 0x00, 0xED, 0xB0)
	c.PC = 0x0000

	c.Step() // LD HL,0x1000
	c.Step() // LD DE,0x2000
	c.Step() // LD BC,5
	for c.bc() != 0 {
		c.Step() // LDIR (repeats in place until BC==0)
	}

	for i := 0; i < 5; i++ {
		if bus.mem[0x2000+i] != bus.mem[0x1000+i] {
			t.Fatalf("LDIR byte %d: got %#02x, want %#02x", i, bus.mem[0x2000+i], bus.mem[0x1000+i])
		}
	}
	if c.bc() != 0 {
		t.Errorf("LDIR should leave BC=0, got %#04x", c.bc())
	}
}

func TestDjnzLoop(t *testing.T) {
	c, bus := newTestCpu()
	// LD B,5; loop: INC A; DJNZ loop
	bus.load(0x0000, 0x06, 0x05, 0x3C, 0x10, 0xFD)
	c.PC = 0x0000
	c.A = 0
	c.Step() // LD B,5

	for c.B != 0 {
		c.Step() // INC A
		c.Step() // DJNZ
	}

	if c.A != 5 {
		t.Errorf("DJNZ loop: A=%d, want 5", c.A)
	}
}

func TestIndexedAddressing(t *testing.T) {
	c, bus := newTestCpu()
	bus.mem[0x3005] = 0x99
	c.IX = 0x3000
	// LD A,(IX+5)
	bus.load(0x0000, 0xDD, 0x7E, 0x05)
	c.PC = 0x0000
	c.Step()

	if c.A != 0x99 {
		t.Errorf("LD A,(IX+5): A=%#02x, want 0x99", c.A)
	}
	if c.PC != 0x0003 {
		t.Errorf("LD A,(IX+5): PC=%#04x, want 0x0003", c.PC)
	}
}

func TestPushPopExRoundTrip(t *testing.T) {
	c, bus := newTestCpu()
	c.setHL(0xBEEF)
	before := c.hl()
	c.push16(c.hl())
	c.setHL(0)
	c.setHL(c.pop16())
	if c.hl() != before {
		t.Errorf("PUSH/POP round trip: got %#04x, want %#04x", c.hl(), before)
	}

	c.setDE(0x1234)
	de, hl := c.de(), c.hl()
	// EX DE,HL twice should be identity.
	bus.load(c.PC, 0xEB, 0xEB)
	c.Step()
	c.Step()
	if c.de() != de || c.hl() != hl {
		t.Error("double EX DE,HL should be identity")
	}
}

func TestInterruptIM1(t *testing.T) {
	c, _ := newTestCpu()
	c.PC = 0x0100
	c.SP = 0xFF00
	c.IFF1 = true
	c.IM = 1

	c.Interrupt(0xFF)

	if c.PC != 0x0038 {
		t.Errorf("IM 1 interrupt: PC=%#04x, want 0x0038", c.PC)
	}
	if c.IFF1 {
		t.Error("interrupt acceptance should clear IFF1")
	}
	if c.pop16() != 0x0100 {
		t.Error("interrupt should push the return address")
	}
}

func TestInterruptSuppressedDuringEIDelay(t *testing.T) {
	c, _ := newTestCpu()
	c.IFF1 = true
	c.EIDelay = true
	pc := c.PC

	c.Interrupt(0xFF)

	if c.PC != pc {
		t.Error("interrupt during the EI delay slot should be ignored")
	}
}

func TestHaltWakesOnInterrupt(t *testing.T) {
	c, _ := newTestCpu()
	c.Halted = true
	c.IFF1 = true
	c.IM = 1

	c.Interrupt(0xFF)

	if c.Halted {
		t.Error("accepting an interrupt should clear Halted")
	}
}
