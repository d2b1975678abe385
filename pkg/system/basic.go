// Package system provides the two host shells named by the run
// target's system auto-detection: a BASIC-SBC machine with a
// memory-mapped ACIA serial controller, and a CP/M 2.2 machine with a
// BDOS shim. Both implement cpu.Bus directly over a private 64 KiB
// memory array.
package system

import (
	"bufio"
	"io"

	"github.com/retrogo/z80emu/pkg/cpu"
)

// aciaStatusTDRE marks the transmit register always ready; this
// emulation never models transmit backpressure.
const aciaStatusTDRE = 0x02
const aciaStatusRDRF = 0x01

// romSize is the portion of the address space protected as read-only
// once a ROM image has been loaded: the low 8 KiB, per the reference
// BASIC-SBC memory map.
const romSize = 0x2000

// Basic is a BASIC-SBC machine: 64 KiB of RAM, an ACIA UART mapped at
// a detected or configured port pair, and nothing else on the bus.
// The first 8 KiB becomes write-protected once a ROM image is marked
// loaded via ProtectROM, matching the reference hardware's ROM/RAM
// split.
type Basic struct {
	Mem [65536]uint8

	SerialBase uint16

	romProtected bool

	rxData     uint8
	rxReady    bool
	irqEnabled bool

	out *bufio.Writer
}

// NewBasic creates a Basic machine whose ACIA is at the given port
// pair (status at SerialBase, data at SerialBase+1) and whose
// terminal output is wired to out. The receive side has no stored
// source: PollInput takes its byte supplier as an argument instead,
// so the caller decides where bytes come from.
func NewBasic(serialBase uint16, out io.Writer) *Basic {
	return &Basic{
		SerialBase: serialBase,
		out:        bufio.NewWriter(out),
	}
}

// ProtectROM marks the low 8 KiB of memory read-only; called once the
// ROM image has been loaded into that region.
func (b *Basic) ProtectROM() { b.romProtected = true }

func (b *Basic) ReadMem(addr uint16) uint8 { return b.Mem[addr] }
func (b *Basic) WriteMem(addr uint16, val uint8) {
	if b.romProtected && addr < romSize {
		return
	}
	b.Mem[addr] = val
}

func (b *Basic) In(port uint16) uint8 {
	p := uint8(port)
	switch p {
	case uint8(b.SerialBase):
		status := uint8(aciaStatusTDRE)
		if b.rxReady {
			status |= aciaStatusRDRF
		}
		return status
	case uint8(b.SerialBase + 1):
		b.rxReady = false
		return b.rxData
	}
	return 0xFF
}

func (b *Basic) Out(port uint16, val uint8) {
	p := uint8(port)
	switch p {
	case uint8(b.SerialBase):
		if val == 0x03 {
			b.rxReady = false
			b.irqEnabled = false
		} else {
			b.irqEnabled = val&0x80 != 0
		}
	case uint8(b.SerialBase + 1):
		if val == '\r' {
			b.out.WriteString("\r\n")
		} else {
			b.out.WriteByte(val)
		}
		b.out.Flush()
	}
}

// PollInput reads at most one byte from the terminal input, without
// blocking if none is pending, and latches it as the ACIA's received
// byte. It reports whether an interrupt should be raised: a byte
// arrived, the ACIA's receive interrupt is enabled, and the Cpu's
// IFF1 is set.
func (b *Basic) PollInput(c *cpu.Cpu, available func() (uint8, bool)) bool {
	ch, ok := available()
	if !ok {
		return false
	}
	b.rxData = ch
	b.rxReady = true
	return b.irqEnabled && c.IFF1
}

// QuantumTStates is the T-state budget run_basic's original reference
// uses per input-poll cycle: ~7373 T-states at 3.6864 MHz is
// approximately 2ms, a reasonable responsiveness/overhead tradeoff
// for a polled terminal.
const QuantumTStates = 7373
