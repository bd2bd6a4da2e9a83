package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/opcode"
	"github.com/retroenv/retrogolib/set"
)

const (
	entryLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// processJumpDestinations assigns a label to every branch destination.
func (dis *Disasm) processJumpDestinations() {
	if index, ok := dis.index(machine.ProgramStart); ok {
		dis.offsets[index].label = entryLabel
	}

	for _, address := range sortedAddresses(dis.branchDestinations) {
		index, ok := dis.index(address)
		if !ok {
			continue
		}

		offsetInfo := &dis.offsets[index]
		if offsetInfo.typ == codeOperandOffset {
			dis.handleJumpIntoInstruction(index)
			continue
		}
		if offsetInfo.label != "" {
			continue
		}

		if offsetInfo.isCallDestination {
			offsetInfo.label = fmt.Sprintf(funcNaming, address)
		} else {
			offsetInfo.label = fmt.Sprintf(labelNaming, address)
		}
	}
}

// processDataReferences assigns a label to every address that is loaded
// into the index register and does not contain code.
func (dis *Disasm) processDataReferences() {
	for _, address := range sortedAddresses(dis.dataReferences) {
		index, ok := dis.index(address)
		if !ok {
			continue
		}

		offsetInfo := &dis.offsets[index]
		if offsetInfo.label != "" || offsetInfo.typ == codeOperandOffset {
			continue
		}
		offsetInfo.label = fmt.Sprintf(dataNaming, address)
	}
}

// handleJumpIntoInstruction marks an instruction that has a branch
// destination in its second byte.
func (dis *Disasm) handleJumpIntoInstruction(index int) {
	offsetInfo := &dis.offsets[index-1]
	offsetInfo.comment = "branch into instruction detected"
}

// code returns the assembly code of an instruction, using the label of the
// referenced address if it has one.
func (dis *Disasm) code(offsetInfo offset) string {
	target := opcode.Address(offsetInfo.word)
	index, ok := dis.index(target)
	if !ok || dis.offsets[index].label == "" {
		return opcode.Format(offsetInfo.word)
	}

	label := dis.offsets[index].label
	name := offsetInfo.op.Name()

	switch offsetInfo.op.Op {
	case opcode.Jp, opcode.Call:
		return fmt.Sprintf("%s %s", name, label)
	case opcode.JpV0:
		return fmt.Sprintf("%s V0, %s", name, label)
	case opcode.LdI:
		return fmt.Sprintf("%s I, %s", name, label)
	default:
		return opcode.Format(offsetInfo.word)
	}
}

func sortedAddresses(addresses set.Set[uint16]) []uint16 {
	sorted := make([]uint16, 0, len(addresses))
	for address := range addresses {
		sorted = append(sorted, address)
	}
	slices.Sort(sorted)
	return sorted
}
