package system

import (
	"bufio"
	"io"
)

// Cpm is a minimal CP/M 2.2 machine: 64 KiB of RAM with a BDOS
// intercept at address 0x0005 implementing just the three calls a
// typical .com/.cim program needs to print and exit. I/O ports are
// unconnected, matching the reference shell, which never wires
// anything to cpm_io_in/cpm_io_out.
type Cpm struct {
	Mem [65536]uint8

	out *bufio.Writer
}

// NewCpm creates a Cpm machine whose console output goes to out.
func NewCpm(out io.Writer) *Cpm {
	return &Cpm{out: bufio.NewWriter(out)}
}

func (m *Cpm) ReadMem(addr uint16) uint8       { return m.Mem[addr] }
func (m *Cpm) WriteMem(addr uint16, val uint8) { m.Mem[addr] = val }
func (m *Cpm) In(port uint16) uint8            { return 0xFF }
func (m *Cpm) Out(port uint16, val uint8)      {}

// BdosFunction identifies which BDOS call C_WRITE/C_WRITESTR/P_TERMCPM
// a CALL 5 invoked, read from register C by the caller.
type BdosFunction uint8

const (
	BdosWriteChar   BdosFunction = 2
	BdosWriteString BdosFunction = 9
	BdosTerminate   BdosFunction = 0
)

// HandleBdos implements the BDOS function named by fn (the value of
// register C at the moment PC reached 0x0005), given e (register E,
// the argument to C_WRITE) and de (the DE pair, the argument to
// C_WRITESTR). It reports whether the program asked to terminate.
func (m *Cpm) HandleBdos(fn BdosFunction, e uint8, de uint16) (terminate bool) {
	switch fn {
	case BdosWriteChar:
		m.out.WriteByte(e)
		m.out.Flush()
	case BdosWriteString:
		addr := de
		for {
			ch := m.Mem[addr]
			addr++
			if ch == '$' {
				break
			}
			m.out.WriteByte(ch)
			if addr == 0 {
				break // wrapped around the address space
			}
		}
		m.out.Flush()
	case BdosTerminate:
		return true
	}
	return false
}
