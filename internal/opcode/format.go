package opcode

import "fmt"

// Format returns the assembly representation of an instruction word.
// Words that do not decode to an instruction are formatted as data bytes.
func Format(word uint16) string {
	op, ok := Decode(word)
	if !ok {
		return fmt.Sprintf(".byte $%02X, $%02X", byte(word>>8), byte(word))
	}

	name := op.Name()
	if params := formatParams(op.Op, word); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the parameters of an instruction.
func formatParams(op Op, word uint16) string {
	x := RegisterX(word)
	y := RegisterY(word)

	switch op {
	case Cls, Ret:
		return "" // No parameters
	case Sys, Jp, Call:
		return fmt.Sprintf("$%03X", Address(word))
	case JpV0:
		return fmt.Sprintf("V0, $%03X", Address(word))
	case LdI:
		return fmt.Sprintf("I, $%03X", Address(word))
	case SeByte, SneByte, LdByte, AddByte, Rnd:
		return fmt.Sprintf("V%X, $%02X", x, Byte(word))
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn:
		return fmt.Sprintf("V%X, V%X", x, y)
	case Shr, Shl, Skp, Sknp:
		return fmt.Sprintf("V%X", x)
	case Drw:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, Nibble(word))
	default:
		return formatTimerMemoryParams(op, x)
	}
}

// formatTimerMemoryParams formats the parameters of the F family.
func formatTimerMemoryParams(op Op, x int) string {
	switch op {
	case LdVxDT:
		return fmt.Sprintf("V%X, DT", x)
	case LdVxK:
		return fmt.Sprintf("V%X, K", x)
	case LdDTVx:
		return fmt.Sprintf("DT, V%X", x)
	case LdSTVx:
		return fmt.Sprintf("ST, V%X", x)
	case AddI:
		return fmt.Sprintf("I, V%X", x)
	case LdF:
		return fmt.Sprintf("F, V%X", x)
	case LdB:
		return fmt.Sprintf("B, V%X", x)
	case LdIVx:
		return fmt.Sprintf("[I], V%X", x)
	case LdVxI:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
