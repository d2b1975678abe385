package cpu

// getReg8 reads an 8-bit register by its 3-bit z/y field index:
// 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
func (c *Cpu) getReg8(idx int) uint8 {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.Bus.ReadMem(c.hl())
	case 7:
		return c.A
	}
	return 0
}

func (c *Cpu) setReg8(idx int, val uint8) {
	switch idx {
	case 0:
		c.B = val
	case 1:
		c.C = val
	case 2:
		c.D = val
	case 3:
		c.E = val
	case 4:
		c.H = val
	case 5:
		c.L = val
	case 6:
		c.Bus.WriteMem(c.hl(), val)
	case 7:
		c.A = val
	}
}

// getRP reads a 16-bit register pair by the p field: 0=BC 1=DE 2=HL 3=SP.
func (c *Cpu) getRP(p int) uint16 {
	switch p {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	case 3:
		return c.SP
	}
	return 0
}

func (c *Cpu) setRP(p int, val uint16) {
	switch p {
	case 0:
		c.setBC(val)
	case 1:
		c.setDE(val)
	case 2:
		c.setHL(val)
	case 3:
		c.SP = val
	}
}

// getRP2 reads a 16-bit register pair by the p field for PUSH/POP,
// where slot 3 is AF instead of SP.
func (c *Cpu) getRP2(p int) uint16 {
	switch p {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	case 3:
		return c.af()
	}
	return 0
}

func (c *Cpu) setRP2(p int, val uint16) {
	switch p {
	case 0:
		c.setBC(val)
	case 1:
		c.setDE(val)
	case 2:
		c.setHL(val)
	case 3:
		c.setAF(val)
	}
}

// evalCC evaluates one of the eight condition codes against the
// current flags: 0=NZ 1=Z 2=NC 3=C 4=PO 5=PE 6=P 7=M.
func (c *Cpu) evalCC(cc int) bool {
	switch cc {
	case 0:
		return c.F&FlagZ == 0
	case 1:
		return c.F&FlagZ != 0
	case 2:
		return c.F&FlagC == 0
	case 3:
		return c.F&FlagC != 0
	case 4:
		return c.F&FlagP == 0
	case 5:
		return c.F&FlagP != 0
	case 6:
		return c.F&FlagS == 0
	case 7:
		return c.F&FlagS != 0
	}
	return false
}

// Step executes exactly one instruction (or, while halted, one NOP
// cycle) and returns the number of T-states it consumed. The pending
// EI delay — which suppresses interrupt acceptance for the
// instruction immediately following EI — is cleared here, at the
// start of the *next* Step, not inside EI itself.
func (c *Cpu) Step() int {
	if c.EIDelay {
		c.EIDelay = false
	}

	if c.Halted {
		c.incR()
		c.Clocks += 4
		return 4
	}

	c.incR()
	op := c.fetch8()
	t := c.execMainOp(op)
	c.Clocks += uint64(t)
	return t
}

// execMainOp decodes and runs one unprefixed opcode byte already
// fetched from the instruction stream, following the (x,y,z,p,q)
// decomposition: x=op>>6, y=(op>>3)&7, z=op&7, p=y>>1, q=y&1.
func (c *Cpu) execMainOp(op uint8) int {
	x := int(op >> 6)
	y := int(op>>3) & 7
	z := int(op & 7)
	p := y >> 1
	q := y & 1
	t := int(tStatesMain[op])

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0: // NOP
			case 1: // EX AF, AF'
				c.A, c.A2 = c.A2, c.A
				c.F, c.F2 = c.F2, c.F
			case 2: // DJNZ d
				d := int8(c.fetch8())
				c.B--
				if c.B != 0 {
					c.PC = uint16(int32(c.PC) + int32(d))
					t = 13
				}
			case 3: // JR d
				d := int8(c.fetch8())
				c.PC = uint16(int32(c.PC) + int32(d))
			default: // JR cc, d (y=4..7)
				d := int8(c.fetch8())
				if c.evalCC(y - 4) {
					c.PC = uint16(int32(c.PC) + int32(d))
					t = 12
				}
			}
		case 1:
			if q == 0 {
				c.setRP(p, c.fetch16())
			} else {
				c.setHL(c.addHL(c.hl(), c.getRP(p)))
			}
		case 2:
			switch p {
			case 0:
				if q == 0 {
					c.Bus.WriteMem(c.bc(), c.A)
				} else {
					c.A = c.Bus.ReadMem(c.bc())
				}
			case 1:
				if q == 0 {
					c.Bus.WriteMem(c.de(), c.A)
				} else {
					c.A = c.Bus.ReadMem(c.de())
				}
			case 2:
				addr := c.fetch16()
				if q == 0 {
					c.writeWord(addr, c.hl())
				} else {
					c.setHL(c.readWord(addr))
				}
			case 3:
				addr := c.fetch16()
				if q == 0 {
					c.Bus.WriteMem(addr, c.A)
				} else {
					c.A = c.Bus.ReadMem(addr)
				}
			}
		case 3:
			if q == 0 {
				c.setRP(p, c.getRP(p)+1)
			} else {
				c.setRP(p, c.getRP(p)-1)
			}
		case 4:
			c.setReg8(y, c.inc8(c.getReg8(y)))
		case 5:
			c.setReg8(y, c.dec8(c.getReg8(y)))
		case 6:
			c.setReg8(y, c.fetch8())
		case 7:
			switch y {
			case 0: // RLCA
				carry := c.A >> 7
				c.A = c.A<<1 | carry
				c.F = (c.F & (FlagS | FlagZ | FlagV)) | (c.A & (Flag5 | Flag3)) | carry
			case 1: // RRCA
				carry := c.A & 1
				c.A = c.A>>1 | carry<<7
				c.F = (c.F & (FlagS | FlagZ | FlagV)) | (c.A & (Flag5 | Flag3)) | carry
			case 2: // RLA
				carry := c.A >> 7
				c.A = c.A<<1 | c.F&FlagC
				c.F = (c.F & (FlagS | FlagZ | FlagV)) | (c.A & (Flag5 | Flag3)) | carry
			case 3: // RRA
				carry := c.A & 1
				c.A = c.A>>1 | (c.F&FlagC)<<7
				c.F = (c.F & (FlagS | FlagZ | FlagV)) | (c.A & (Flag5 | Flag3)) | carry
			case 4: // DAA
				c.daa()
			case 5: // CPL
				c.A = ^c.A
				c.F = (c.F & (FlagS | FlagZ | FlagV | FlagC)) | (c.A & (Flag5 | Flag3)) | FlagH | FlagN
			case 6: // SCF
				c.F = (c.F & (FlagS | FlagZ | FlagV)) | (c.A & (Flag5 | Flag3)) | FlagC
			case 7: // CCF
				hf := bsel(c.F&FlagC != 0, FlagH, 0)
				c.F = (c.F & (FlagS | FlagZ | FlagV)) | (c.A & (Flag5 | Flag3)) | hf | ((c.F & FlagC) ^ FlagC)
			}
		}

	case 1:
		if y == 6 && z == 6 {
			c.Halted = true
			c.PC--
		} else {
			c.setReg8(y, c.getReg8(z))
		}

	case 2:
		c.doAlu(y, c.getReg8(z))

	case 3:
		switch z {
		case 0: // RET cc[y]
			if c.evalCC(y) {
				c.PC = c.pop16()
				t = 11
			}
		case 1:
			if q == 0 {
				c.setRP2(p, c.pop16())
			} else {
				switch p {
				case 0: // RET
					c.PC = c.pop16()
				case 1: // EXX
					c.B, c.B2 = c.B2, c.B
					c.C, c.C2 = c.C2, c.C
					c.D, c.D2 = c.D2, c.D
					c.E, c.E2 = c.E2, c.E
					c.H, c.H2 = c.H2, c.H
					c.L, c.L2 = c.L2, c.L
				case 2: // JP (HL)
					c.PC = c.hl()
				case 3: // LD SP, HL
					c.SP = c.hl()
				}
			}
		case 2: // JP cc[y], nn
			addr := c.fetch16()
			if c.evalCC(y) {
				c.PC = addr
			}
		case 3:
			switch y {
			case 0: // JP nn
				c.PC = c.fetch16()
			case 1: // CB prefix
				t = c.execCB()
			case 2: // OUT (n), A
				port := c.fetch8()
				c.Bus.Out(uint16(c.A)<<8|uint16(port), c.A)
			case 3: // IN A, (n)
				port := c.fetch8()
				c.A = c.Bus.In(uint16(c.A)<<8 | uint16(port))
			case 4: // EX (SP), HL
				val := c.readWord(c.SP)
				c.writeWord(c.SP, c.hl())
				c.setHL(val)
			case 5: // EX DE, HL
				tmp := c.de()
				c.setDE(c.hl())
				c.setHL(tmp)
			case 6: // DI
				c.IFF1, c.IFF2 = false, false
			case 7: // EI
				c.IFF1, c.IFF2 = true, true
				c.EIDelay = true
			}
		case 4: // CALL cc[y], nn
			addr := c.fetch16()
			if c.evalCC(y) {
				c.push16(c.PC)
				c.PC = addr
				t = 17
			}
		case 5:
			if q == 0 {
				c.push16(c.getRP2(p))
			} else {
				switch p {
				case 0: // CALL nn
					addr := c.fetch16()
					c.push16(c.PC)
					c.PC = addr
				case 1: // DD prefix
					c.incR()
					t = c.execDDFD(&c.IX)
				case 2: // ED prefix
					t = c.execED()
				case 3: // FD prefix
					c.incR()
					t = c.execDDFD(&c.IY)
				}
			}
		case 6: // ALU A, n
			c.doAlu(y, c.fetch8())
		case 7: // RST y*8
			c.push16(c.PC)
			c.PC = uint16(y * 8)
		}
	}

	return t
}
