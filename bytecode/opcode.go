package bytecode

// OpCode is a single bytecode instruction tag. Every opcode is one byte;
// its operands (if any) immediately follow in the instruction stream.
type OpCode byte

const (
	OpNil OpCode = iota
	OpTrue
	OpFalse
	OpPop

	OpConstant     // <k u8>    push constants[k]
	OpDefineGlobal // <k u8>    globals[name(constants[k])] = pop()
	OpGetGlobal    // <k u8>    push globals[name(constants[k])]
	OpSetGlobal    // <k u8>    globals[name(constants[k])] = peek(0)

	OpGetLocal // <slot u8> push stack[frame.Base+slot]
	OpSetLocal // <slot u8> stack[frame.Base+slot] = peek(0)

	OpEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpNot

	OpPrint

	OpJump           // <ofs u16 LE> ip += ofs
	OpJumpIfFalsePop // <ofs u16 LE> if !truthy(pop()) { ip += ofs }
	OpJumpIfFalsePeek
	OpJumpIfTruePeek
	OpLoop // <ofs u16 LE> ip -= ofs

	OpCall    // <argc u8>
	OpClosure // <k u8>  wrap constants[k].(*ObjFunction) in a new ObjClosure
	OpReturn
)

// operandWidths gives the number of operand bytes following each opcode,
// used by the disassembler. Opcodes not listed take no operand.
var operandWidths = map[OpCode]int{
	OpConstant:        1,
	OpDefineGlobal:    1,
	OpGetGlobal:       1,
	OpSetGlobal:       1,
	OpGetLocal:        1,
	OpSetLocal:        1,
	OpCall:            1,
	OpClosure:         1,
	OpJump:            2,
	OpJumpIfFalsePop:  2,
	OpJumpIfFalsePeek: 2,
	OpJumpIfTruePeek:  2,
	OpLoop:            2,
}

var opcodeNames = map[OpCode]string{
	OpNil:             "OP_NIL",
	OpTrue:            "OP_TRUE",
	OpFalse:           "OP_FALSE",
	OpPop:             "OP_POP",
	OpConstant:        "OP_CONSTANT",
	OpDefineGlobal:    "OP_DEFINE_GLOBAL",
	OpGetGlobal:       "OP_GET_GLOBAL",
	OpSetGlobal:       "OP_SET_GLOBAL",
	OpGetLocal:        "OP_GET_LOCAL",
	OpSetLocal:        "OP_SET_LOCAL",
	OpEqual:           "OP_EQUAL",
	OpGreater:         "OP_GREATER",
	OpGreaterEqual:    "OP_GREATER_EQUAL",
	OpLess:            "OP_LESS",
	OpLessEqual:       "OP_LESS_EQUAL",
	OpAdd:             "OP_ADD",
	OpSub:             "OP_SUBTRACT",
	OpMul:             "OP_MULTIPLY",
	OpDiv:             "OP_DIVIDE",
	OpNeg:             "OP_NEGATE",
	OpNot:             "OP_NOT",
	OpPrint:           "OP_PRINT",
	OpJump:            "OP_JUMP",
	OpJumpIfFalsePop:  "OP_JUMP_IF_FALSE_POP",
	OpJumpIfFalsePeek: "OP_JUMP_IF_FALSE_PEEK",
	OpJumpIfTruePeek:  "OP_JUMP_IF_TRUE_PEEK",
	OpLoop:            "OP_LOOP",
	OpCall:            "OP_CALL",
	OpClosure:         "OP_CLOSURE",
	OpReturn:          "OP_RETURN",
}

func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}

// OperandWidth returns the number of operand bytes that follow op in the
// instruction stream.
func OperandWidth(op OpCode) int {
	return operandWidths[op]
}

// Valid reports whether b decodes to a known opcode. A bounds-checked table
// lookup, not the unchecked transmute the original source note warns
// against (spec.md §9).
func Valid(b byte) (OpCode, bool) {
	op := OpCode(b)
	_, ok := opcodeNames[op]
	return op, ok
}
