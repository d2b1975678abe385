package cpu

// execED decodes and runs one ED-prefixed opcode: the IN/OUT/16-bit
// ALU/LD-pair/NEG/RETN-RETI/IM/miscellaneous group (x=1) and the four
// block-instruction families (x=2, z<=3, y>=4). Anything else is an
// undocumented no-op, matching the documented Z80's behavior for the
// many unassigned ED opcodes.
func (c *Cpu) execED() int {
	op := c.fetch8()
	x := int(op >> 6)
	y := int(op>>3) & 7
	z := int(op & 7)
	p := y >> 1
	q := y & 1

	if x == 1 {
		switch z {
		case 0: // IN r[y], (C) / IN (C) if y==6
			port := c.bc()
			val := c.Bus.In(port)
			if y != 6 {
				c.setReg8(y, val)
			}
			c.F = (c.F & FlagC) | sz53p(val)
			return 12
		case 1: // OUT (C), r[y] / OUT (C), 0 if y==6
			port := c.bc()
			val := uint8(0)
			if y != 6 {
				val = c.getReg8(y)
			}
			c.Bus.Out(port, val)
			return 12
		case 2: // SBC/ADC HL, rp[p]
			val := c.getRP(p)
			if q == 0 {
				c.setHL(c.sbcHL16(c.hl(), val))
			} else {
				c.setHL(c.adcHL16(c.hl(), val))
			}
			return 15
		case 3: // LD (nn), rp[p] / LD rp[p], (nn)
			addr := c.fetch16()
			if q == 0 {
				c.writeWord(addr, c.getRP(p))
			} else {
				c.setRP(p, c.readWord(addr))
			}
			return 20
		case 4: // NEG
			a := c.A
			c.A = 0
			c.aluSub(a)
			return 8
		case 5: // RETN / RETI
			c.IFF1 = c.IFF2
			c.PC = c.pop16()
			return 14
		case 6: // IM y
			c.IM = imTable[y]
			return 8
		case 7:
			switch y {
			case 0: // LD I, A
				c.I = c.A
				return 9
			case 1: // LD R, A
				c.R = c.A
				return 9
			case 2: // LD A, I
				c.A = c.I
				c.F = (c.F & FlagC) | sz53(c.A) | bsel(c.IFF2, FlagV, 0)
				return 9
			case 3: // LD A, R
				c.A = c.R
				c.F = (c.F & FlagC) | sz53(c.A) | bsel(c.IFF2, FlagV, 0)
				return 9
			case 4: // RRD
				m := c.Bus.ReadMem(c.hl())
				loA := c.A & 0x0F
				c.A = (c.A & 0xF0) | (m & 0x0F)
				m = m>>4 | loA<<4
				c.Bus.WriteMem(c.hl(), m)
				c.F = (c.F & FlagC) | sz53p(c.A)
				return 18
			case 5: // RLD
				m := c.Bus.ReadMem(c.hl())
				loA := c.A & 0x0F
				c.A = (c.A & 0xF0) | (m >> 4)
				m = m<<4 | loA
				c.Bus.WriteMem(c.hl(), m)
				c.F = (c.F & FlagC) | sz53p(c.A)
				return 18
			default:
				return 8
			}
		}
	} else if x == 2 && z <= 3 && y >= 4 {
		return c.execBlock(y, z)
	}

	return 8
}

// execBlock runs one of LDI/LDD/LDIR/LDDR, CPI/CPD/CPIR/CPDR,
// INI/IND/INIR/INDR, OUTI/OUTD/OTIR/OTDR. y selects increment (4,6)
// vs decrement (5,7) and whether the repeating form (6,7) keeps going
// while its loop condition holds; z selects the family.
func (c *Cpu) execBlock(y, z int) int {
	incr := y == 4 || y == 6
	repeats := y >= 6
	repeat := false

	switch z {
	case 0: // LDI/LDD/LDIR/LDDR
		val := c.Bus.ReadMem(c.hl())
		c.Bus.WriteMem(c.de(), val)
		if incr {
			c.setHL(c.hl() + 1)
			c.setDE(c.de() + 1)
		} else {
			c.setHL(c.hl() - 1)
			c.setDE(c.de() - 1)
		}
		c.setBC(c.bc() - 1)
		n := val + c.A
		c.F = (c.F & (FlagS | FlagZ | FlagC)) |
			bsel(c.bc() != 0, FlagV, 0) |
			(n & Flag3) |
			bsel(n&0x02 != 0, Flag5, 0)
		if repeats && c.bc() != 0 {
			c.PC -= 2
			repeat = true
		}

	case 1: // CPI/CPD/CPIR/CPDR
		val := c.Bus.ReadMem(c.hl())
		result := c.A - val
		hf := (c.A ^ val ^ result) & 0x10
		if incr {
			c.setHL(c.hl() + 1)
		} else {
			c.setHL(c.hl() - 1)
		}
		c.setBC(c.bc() - 1)
		n := result - bsel(hf != 0, 1, 0)
		c.F = (c.F & FlagC) | FlagN |
			(result & FlagS) |
			bsel(result == 0, FlagZ, 0) |
			bsel(hf != 0, FlagH, 0) |
			bsel(c.bc() != 0, FlagV, 0) |
			(n & Flag3) |
			bsel(n&0x02 != 0, Flag5, 0)
		if repeats && c.bc() != 0 && result != 0 {
			c.PC -= 2
			repeat = true
		}

	case 2: // INI/IND/INIR/INDR
		val := c.Bus.In(c.bc())
		c.Bus.WriteMem(c.hl(), val)
		c.B--
		if incr {
			c.setHL(c.hl() + 1)
		} else {
			c.setHL(c.hl() - 1)
		}
		c.F = (c.F &^ (FlagZ | FlagN)) |
			bsel(c.B == 0, FlagZ, 0) |
			bsel(val&0x80 != 0, FlagN, 0) |
			c.B&(FlagS|Flag5|Flag3)
		if repeats && c.B != 0 {
			c.PC -= 2
			repeat = true
		}

	case 3: // OUTI/OUTD/OTIR/OTDR
		val := c.Bus.ReadMem(c.hl())
		c.B--
		c.Bus.Out(c.bc(), val)
		if incr {
			c.setHL(c.hl() + 1)
		} else {
			c.setHL(c.hl() - 1)
		}
		c.F = (c.F &^ (FlagZ | FlagN)) |
			bsel(c.B == 0, FlagZ, 0) |
			bsel(val&0x80 != 0, FlagN, 0) |
			c.B&(FlagS|Flag5|Flag3)
		if repeats && c.B != 0 {
			c.PC -= 2
			repeat = true
		}
	}

	if repeat {
		return 21
	}
	return 16
}
