package system

import (
	"bytes"
	"testing"

	"github.com/retrogo/z80emu/pkg/cpu"
)

func TestBasicAciaTransmit(t *testing.T) {
	var out bytes.Buffer
	b := NewBasic(0x80, &out)

	b.Out(0x80, 0x00) // control: no interrupts
	b.Out(0x81, 'H')
	b.Out(0x81, 'i')
	b.Out(0x81, '\r')

	if out.String() != "Hi\r\n" {
		t.Errorf("ACIA transmit: got %q, want %q", out.String(), "Hi\r\n")
	}
}

func TestBasicAciaReceive(t *testing.T) {
	var out bytes.Buffer
	b := NewBasic(0x80, &out)

	c := cpu.New(b)
	c.IFF1 = true

	fired := b.PollInput(c, func() (uint8, bool) { return 'Q', true })
	if fired {
		t.Error("PollInput should not report an interrupt when IRQ is disabled")
	}
	if b.In(0x80)&aciaStatusRDRF == 0 {
		t.Error("status register should report RDRF after a byte arrives")
	}
	if b.In(0x81) != 'Q' {
		t.Error("data register should return the latched byte")
	}
	if b.In(0x80)&aciaStatusRDRF != 0 {
		t.Error("reading the data register should clear RDRF")
	}

	b.Out(0x80, 0x80) // enable receive interrupt
	fired = b.PollInput(c, func() (uint8, bool) { return 'R', true })
	if !fired {
		t.Error("PollInput should report an interrupt once IRQ is enabled and IFF1 is set")
	}
}

func TestBasicRomProtection(t *testing.T) {
	b := NewBasic(0x80, &bytes.Buffer{})
	b.Mem[0x0000] = 0xAA
	b.Mem[0x3000] = 0xAA
	b.ProtectROM()

	b.WriteMem(0x0000, 0xFF)
	b.WriteMem(0x1FFF, 0xFF)
	b.WriteMem(0x3000, 0xFF)

	if b.Mem[0x0000] != 0xAA {
		t.Error("write to protected ROM region at 0x0000 should be ignored")
	}
	if b.Mem[0x1FFF] != 0x00 {
		t.Error("write to protected ROM region at 0x1FFF should be ignored")
	}
	if b.Mem[0x3000] != 0xFF {
		t.Error("write above the 8 KiB ROM boundary should succeed")
	}
}

func TestBasicAciaMasterReset(t *testing.T) {
	var out bytes.Buffer
	b := NewBasic(0x80, &out)
	b.rxReady = true
	b.irqEnabled = true

	b.Out(0x80, 0x03)

	if b.rxReady || b.irqEnabled {
		t.Error("master reset (0x03) should clear rxReady and irqEnabled")
	}
}
