package cpu

// Base T-state cost of every unprefixed opcode, indexed by the raw
// opcode byte. Instructions with data-dependent timing (conditional
// JR/CALL/RET, block repeats, DJNZ) add their extra cycles at the call
// site; this table only carries the "always paid" cost.
var tStatesMain = [256]uint8{
	4, 10, 7, 6, 4, 4, 7, 4, 4, 11, 7, 6, 4, 4, 7, 4,
	8, 10, 7, 6, 4, 4, 7, 4, 12, 11, 7, 6, 4, 4, 7, 4,
	7, 10, 16, 6, 4, 4, 7, 4, 7, 11, 16, 6, 4, 4, 7, 4,
	7, 10, 13, 6, 11, 11, 10, 4, 7, 11, 13, 6, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	7, 7, 7, 7, 7, 7, 4, 7, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	5, 10, 10, 10, 10, 11, 7, 11, 5, 10, 10, 4, 10, 17, 7, 11,
	5, 10, 10, 11, 10, 11, 7, 11, 5, 4, 10, 11, 10, 4, 7, 11,
	5, 10, 10, 19, 10, 11, 7, 11, 5, 4, 10, 4, 10, 4, 7, 11,
	5, 10, 10, 4, 10, 11, 7, 11, 5, 6, 10, 4, 10, 4, 7, 11,
}

// rNames maps the 3-bit z/y register field (0-7) to its register
// mnemonic, for the disassembler; index 6 is the "(HL)" operand.
var rNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// rpNames maps the 2-bit p field to the 16-bit register pair mnemonic
// used by most instructions (SP in slot 3), for the disassembler.
var rpNames = [4]string{"BC", "DE", "HL", "SP"}

// rp2Names maps the 2-bit p field to the 16-bit register pair mnemonic
// used by PUSH/POP (AF in slot 3 instead of SP), for the disassembler.
var rp2Names = [4]string{"BC", "DE", "HL", "AF"}

// cc maps the 3-bit y field (when used as a condition) to a mnemonic,
// purely for the disassembler; condition evaluation itself lives in
// decode.go's evalCC.
var ccNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

// aluNames maps the 3-bit y field of the x=2 block to its ALU op
// mnemonic, for the disassembler.
var aluNames = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

// rotNames maps the 3-bit y field of a CB-prefixed x=0 opcode to its
// rotate/shift mnemonic, for the disassembler.
var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

// imTable maps the ED-prefixed IM selector (y&3, with y==0 or 1
// both meaning IM 0) to the interrupt mode it sets.
var imTable = [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}
