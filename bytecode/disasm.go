package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders a human-readable listing of chunk, recursively
// disassembling any nested function chunks it finds in the constant pool.
// Running disassembly never mutates chunk (spec.md §8's idempotence
// property).
func Disassemble(chunk *Chunk, name string) string {
	var b strings.Builder
	disassembleInto(&b, chunk, name)
	return b.String()
}

func disassembleInto(b *strings.Builder, chunk *Chunk, name string) {
	fmt.Fprintf(b, "== %s ==\n", name)

	nested := make([]*ObjFunction, 0)
	prevLine := -1
	offset := 0
	for offset < len(chunk.Code) {
		op, ok := Valid(chunk.Code[offset])
		line := chunk.Lines[offset]

		fmt.Fprintf(b, "%04d ", offset)
		if line == prevLine {
			b.WriteString("   | ")
		} else {
			fmt.Fprintf(b, "%4d ", line)
			prevLine = line
		}

		if !ok {
			fmt.Fprintf(b, "UNKNOWN OPCODE %d\n", chunk.Code[offset])
			offset++
			continue
		}

		width := OperandWidth(op)
		switch width {
		case 0:
			fmt.Fprintf(b, "%s\n", op)
		case 1:
			operand := chunk.Code[offset+1]
			switch op {
			case OpConstant, OpDefineGlobal, OpGetGlobal, OpSetGlobal:
				value := chunk.Constants[operand]
				fmt.Fprintf(b, "%-18s %4d '%s'\n", op, operand, value)
				if fn, ok := value.Obj.(*ObjFunction); ok {
					nested = append(nested, fn)
				}
			case OpClosure:
				value := chunk.Constants[operand]
				fmt.Fprintf(b, "%-18s %4d '%s'\n", op, operand, value)
				if fn, ok := value.Obj.(*ObjFunction); ok {
					nested = append(nested, fn)
				}
			default:
				fmt.Fprintf(b, "%-18s %4d\n", op, operand)
			}
		case 2:
			jumpOffset := chunk.ReadUint16(offset + 1)
			var target int
			if op == OpLoop {
				target = offset + 3 - int(jumpOffset)
			} else {
				target = offset + 3 + int(jumpOffset)
			}
			fmt.Fprintf(b, "%-18s %4d -> %d\n", op, jumpOffset, target)
		}
		offset += 1 + width
	}

	for _, fn := range nested {
		childName := fn.Name
		if childName == "" {
			childName = "<fn>"
		}
		disassembleInto(b, fn.Chunk, childName)
	}
}
