package cpu

// Z80 flag bit positions in the F register.
const (
	FlagC uint8 = 0x01 // Carry
	FlagN uint8 = 0x02 // Subtract
	FlagP uint8 = 0x04 // Parity/Overflow
	FlagV       = FlagP
	Flag3 uint8 = 0x08 // Undocumented bit 3
	FlagH uint8 = 0x10 // Half-carry
	Flag5 uint8 = 0x20 // Undocumented bit 5
	FlagZ uint8 = 0x40 // Zero
	FlagS uint8 = 0x80 // Sign
)

// Precomputed flag tables, ported from remogatto/z80. Shared by every
// rotate/shift/logical/increment operation so flag math isn't
// re-derived bit by bit at every call site.
var (
	// sz53Table: S, Z, 5, 3 flags for each byte value.
	sz53Table [256]uint8
	// sz53pTable: sz53 with the parity flag folded in.
	sz53pTable [256]uint8
	// parityTable: parity flag (set = even) for each byte value.
	parityTable [256]uint8
)

func init() {
	for i := 0; i < 256; i++ {
		sz53Table[i] = uint8(i) & (Flag3 | Flag5 | FlagS)

		j := uint8(i)
		p := uint8(0)
		for k := 0; k < 8; k++ {
			p ^= j & 1
			j >>= 1
		}
		if p == 0 {
			parityTable[i] = FlagP
		}
		sz53pTable[i] = sz53Table[i] | parityTable[i]
	}
	sz53Table[0] |= FlagZ
	sz53pTable[0] |= FlagZ
}

// bsel is a branchless flag selector: a if cond, else b.
func bsel(cond bool, a, b uint8) uint8 {
	if cond {
		return a
	}
	return b
}
