package cpu

import "testing"

// TestFlagTables verifies the precomputed flag tables match expected values.
func TestFlagTables(t *testing.T) {
	if sz53Table[0]&FlagZ == 0 {
		t.Error("sz53Table[0] should have Z flag")
	}
	if sz53pTable[0]&FlagZ == 0 {
		t.Error("sz53pTable[0] should have Z flag")
	}
	if sz53Table[0x80]&FlagS == 0 {
		t.Error("sz53Table[0x80] should have S flag")
	}
	if parityTable[0]&FlagP == 0 {
		t.Error("parityTable[0] should have P flag (even parity)")
	}
	if parityTable[1]&FlagP != 0 {
		t.Error("parityTable[1] should NOT have P flag (odd parity)")
	}
	if parityTable[0xFF]&FlagP == 0 {
		t.Error("parityTable[0xFF] should have P flag")
	}
}

func TestBsel(t *testing.T) {
	if bsel(true, 1, 2) != 1 {
		t.Error("bsel(true, 1, 2) should be 1")
	}
	if bsel(false, 1, 2) != 2 {
		t.Error("bsel(false, 1, 2) should be 2")
	}
}
