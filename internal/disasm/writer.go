package disasm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/machine"
)

const dataBytesPerLine = 8

// write outputs the assembly listing of the processed program.
func (dis *Disasm) write(writer io.Writer) error {
	w := bufio.NewWriter(writer)

	if err := dis.writeHeader(w); err != nil {
		return err
	}

	endIndex := dis.endIndex()
	for i := 0; i < endIndex; {
		offsetInfo := dis.offsets[i]

		if offsetInfo.label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", offsetInfo.label); err != nil {
				return fmt.Errorf("writing label %s: %w", offsetInfo.label, err)
			}
		}

		var err error
		if offsetInfo.typ == codeOffset {
			err = dis.writeCode(w, i)
			i += 2
		} else {
			var count int
			count, err = dis.writeData(w, i, endIndex)
			i += count
		}
		if err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

func (dis *Disasm) writeHeader(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Program size: %d bytes\n", len(dis.program)); err != nil {
		return fmt.Errorf("writing program size comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Program starts at $%03X in CHIP-8 memory space\n\n", machine.ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", machine.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	return nil
}

// writeCode writes the instruction starting at the program index.
func (dis *Disasm) writeCode(w io.Writer, index int) error {
	offsetInfo := dis.offsets[index]
	line := "    " + dis.code(offsetInfo)
	comment := dis.comment(index, dis.program[index:index+2], offsetInfo.comment)

	if err := writeLine(w, line, comment); err != nil {
		return fmt.Errorf("writing code: %w", err)
	}
	return nil
}

// writeData writes up to dataBytesPerLine data bytes starting at the program
// index and returns the number of bytes written. A line ends before the next
// label or code byte.
func (dis *Disasm) writeData(w io.Writer, index, endIndex int) (int, error) {
	end := index + 1
	for end < endIndex && end-index < dataBytesPerLine {
		next := dis.offsets[end]
		if next.typ == codeOffset || next.label != "" {
			break
		}
		end++
	}

	data := dis.program[index:end]
	var buf strings.Builder
	for i, b := range data {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "$%02X", b)
	}

	line := "    .byte " + buf.String()
	comment := dis.comment(index, data, "")

	if err := writeLine(w, line, comment); err != nil {
		return 0, fmt.Errorf("writing data: %w", err)
	}
	return len(data), nil
}

// comment returns the line comment containing the optional address and
// byte values followed by the offset comment.
func (dis *Disasm) comment(index int, data []byte, comment string) string {
	if !dis.options.HexComments {
		return comment
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "$%04X", machine.ProgramStart+index)
	for _, b := range data {
		fmt.Fprintf(&buf, " %02X", b)
	}
	if comment != "" {
		buf.WriteString(" ")
		buf.WriteString(comment)
	}
	return buf.String()
}

func writeLine(w io.Writer, line, comment string) error {
	if comment == "" {
		_, err := fmt.Fprintf(w, "%s\n", line)
		return err
	}
	_, err := fmt.Fprintf(w, "%-32s ; %s\n", line, comment)
	return err
}

// endIndex returns the index after the last meaningful program byte.
// Trailing zero bytes that are neither code nor labeled are not output,
// unless enabled by the options.
func (dis *Disasm) endIndex() int {
	if dis.options.ZeroBytes {
		return len(dis.program)
	}

	for i := len(dis.program) - 1; i >= 0; i-- {
		offsetInfo := dis.offsets[i]
		if dis.program[i] != 0 || offsetInfo.typ != dataOffset || offsetInfo.label != "" {
			return i + 1
		}
	}
	return 0
}
