package cpu

// execDDFD decodes and runs one DD- or FD-prefixed opcode, with
// ixiy pointing at the IX or IY register being substituted for HL.
// Opcodes the prefix doesn't affect fall through to the unprefixed
// decoder at a 4 T-state surcharge for the wasted prefix byte.
func (c *Cpu) execDDFD(ixiy *uint16) int {
	op := c.fetch8()
	x := int(op >> 6)
	y := int(op>>3) & 7
	z := int(op & 7)
	p := y >> 1
	q := y & 1

	if op == 0xCB {
		return c.execDDFDCB(*ixiy)
	}

	// Chained DD/FD prefix: consume it and re-enter with the new
	// index register, charging the wasted prefix's 4 T-states.
	if op == 0xDD || op == 0xFD {
		c.incR()
		next := &c.IX
		if op == 0xFD {
			next = &c.IY
		}
		return 4 + c.execDDFD(next)
	}

	// ED after DD/FD: the index prefix is simply discarded.
	if op == 0xED {
		c.incR()
		return 4 + c.execED()
	}

	if x == 0 {
		switch z {
		case 1:
			if q == 0 {
				if p == 2 {
					*ixiy = c.fetch16()
					return 14
				}
			} else {
				if p == 2 {
					*ixiy = c.addHL(*ixiy, *ixiy)
				} else {
					*ixiy = c.addHL(*ixiy, c.getRP(p))
				}
				return 15
			}
		case 2:
			if p == 2 && q == 0 {
				addr := c.fetch16()
				c.writeWord(addr, *ixiy)
				return 20
			} else if p == 2 && q == 1 {
				addr := c.fetch16()
				*ixiy = c.readWord(addr)
				return 20
			}
		case 3:
			if p == 2 {
				if q == 0 {
					*ixiy++
				} else {
					*ixiy--
				}
				return 10
			}
		case 4: // INC r, with IXH/IXL/(IX+d) substitutions
			switch y {
			case 4:
				*ixiy = uint16(c.inc8(uint8(*ixiy>>8)))<<8 | *ixiy&0xFF
				return 8
			case 5:
				*ixiy = *ixiy&0xFF00 | uint16(c.inc8(uint8(*ixiy&0xFF)))
				return 8
			case 6:
				d := int8(c.fetch8())
				addr := uint16(int32(*ixiy) + int32(d))
				c.Bus.WriteMem(addr, c.inc8(c.Bus.ReadMem(addr)))
				return 23
			}
		case 5: // DEC r
			switch y {
			case 4:
				*ixiy = uint16(c.dec8(uint8(*ixiy>>8)))<<8 | *ixiy&0xFF
				return 8
			case 5:
				*ixiy = *ixiy&0xFF00 | uint16(c.dec8(uint8(*ixiy&0xFF)))
				return 8
			case 6:
				d := int8(c.fetch8())
				addr := uint16(int32(*ixiy) + int32(d))
				c.Bus.WriteMem(addr, c.dec8(c.Bus.ReadMem(addr)))
				return 23
			}
		case 6: // LD r, n
			switch y {
			case 4:
				n := c.fetch8()
				*ixiy = uint16(n)<<8 | *ixiy&0xFF
				return 11
			case 5:
				n := c.fetch8()
				*ixiy = *ixiy&0xFF00 | uint16(n)
				return 11
			case 6:
				d := int8(c.fetch8())
				n := c.fetch8()
				c.Bus.WriteMem(uint16(int32(*ixiy)+int32(d)), n)
				return 19
			}
		}
	}

	if x == 1 {
		if y == 6 && z == 6 {
			// LD (HL),(HL) == HALT; not affected by the index prefix.
		} else if y == 6 {
			d := int8(c.fetch8())
			val := c.getReg8(z) // source keeps its own H/L, not IXH/IXL
			c.Bus.WriteMem(uint16(int32(*ixiy)+int32(d)), val)
			return 19
		} else if z == 6 {
			d := int8(c.fetch8())
			val := c.Bus.ReadMem(uint16(int32(*ixiy) + int32(d)))
			c.setReg8(y, val) // dest keeps its own H/L, not IXH/IXL
			return 19
		} else {
			var val uint8
			switch z {
			case 4:
				val = uint8(*ixiy >> 8)
			case 5:
				val = uint8(*ixiy)
			default:
				val = c.getReg8(z)
			}
			switch y {
			case 4:
				*ixiy = uint16(val)<<8 | *ixiy&0xFF
			case 5:
				*ixiy = *ixiy&0xFF00 | uint16(val)
			default:
				c.setReg8(y, val)
			}
			return 8
		}
	}

	if x == 2 {
		switch z {
		case 6:
			d := int8(c.fetch8())
			val := c.Bus.ReadMem(uint16(int32(*ixiy) + int32(d)))
			c.doAlu(y, val)
			return 19
		case 4:
			c.doAlu(y, uint8(*ixiy>>8))
			return 8
		case 5:
			c.doAlu(y, uint8(*ixiy))
			return 8
		}
	}

	if x == 3 {
		switch z {
		case 1:
			if p == 2 && q == 0 {
				*ixiy = c.pop16()
				return 14
			}
			if p == 2 && q == 1 {
				c.PC = *ixiy
				return 8
			}
			if p == 3 && q == 1 {
				c.SP = *ixiy
				return 10
			}
		case 3:
			if op == 0xE3 {
				val := c.readWord(c.SP)
				c.writeWord(c.SP, *ixiy)
				*ixiy = val
				return 23
			}
		case 5:
			if p == 2 && q == 0 {
				c.push16(*ixiy)
				return 15
			}
		}
	}

	// Not affected by the index prefix: run it as an unprefixed
	// opcode, charging 4 T-states for the wasted prefix byte.
	return c.execMainOp(op) + 4
}

// execDDFDCB decodes and runs one DDCB/FDCB-prefixed opcode: rotate,
// shift, BIT, RES, SET against (IX+d)/(IY+d). Non-BIT forms carry the
// well-known undocumented side effect of also copying the result into
// an 8-bit register when z != 6.
func (c *Cpu) execDDFDCB(ixiy uint16) int {
	d := int8(c.fetch8())
	op := c.fetch8()
	x := int(op >> 6)
	y := int(op>>3) & 7
	z := int(op & 7)

	addr := uint16(int32(ixiy) + int32(d))
	val := c.Bus.ReadMem(addr)

	switch x {
	case 0:
		val = c.doRot(y, val)
		c.Bus.WriteMem(addr, val)
		if z != 6 {
			c.setReg8(z, val)
		}
		return 23
	case 1:
		result := val & (1 << uint(y))
		c.F = (c.F & FlagC) | FlagH | bsel(result == 0, FlagZ|FlagV, 0)
		if result&FlagS != 0 {
			c.F |= FlagS
		}
		c.F = (c.F &^ (Flag3 | Flag5)) | uint8(addr>>8)&(Flag3|Flag5)
		return 20
	case 2:
		val &^= 1 << uint(y)
		c.Bus.WriteMem(addr, val)
		if z != 6 {
			c.setReg8(z, val)
		}
		return 23
	case 3:
		val |= 1 << uint(y)
		c.Bus.WriteMem(addr, val)
		if z != 6 {
			c.setReg8(z, val)
		}
		return 23
	}
	return 23
}
