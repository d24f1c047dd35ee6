package bytecode

import (
	"bytes"
	"encoding/binary"
	"io"
)

// ScriptMagic is the first byte of a serialized top-level chunk. The CLI
// uses it to tell a bytecode blob apart from Lox source (spec.md §6).
const ScriptMagic = 0xC0

const (
	tagNil = iota
	tagFalse
	tagTrue
	tagNumber
	tagClosure
	tagFunction
	tagNative
	tagString
)

// Encode serializes the top-level script function to the binary chunk
// format described in spec.md §6.
func Encode(script *ObjFunction) []byte {
	var buf bytes.Buffer
	buf.WriteByte(ScriptMagic)
	writeChunkBody(&buf, script.Chunk)
	return buf.Bytes()
}

// Decode parses a top-level chunk previously produced by Encode.
func Decode(data []byte) (*ObjFunction, error) {
	r := bytes.NewReader(data)
	magic, err := r.ReadByte()
	if err != nil {
		return nil, DecodeError{Message: "empty input"}
	}
	if magic != ScriptMagic {
		return nil, DecodeError{Message: "missing script magic byte"}
	}
	chunk, err := readChunkBody(r)
	if err != nil {
		return nil, err
	}
	return &ObjFunction{IsScript: true, Chunk: chunk}, nil
}

func writeChunkBody(buf *bytes.Buffer, c *Chunk) {
	buf.WriteByte(byte(len(c.Constants)))
	for _, v := range c.Constants {
		writeValue(buf, v)
	}
	binary.Write(buf, binary.LittleEndian, uint64(len(c.Code)))
	buf.Write(c.Code)
	writeLines(buf, c.Lines)
}

func readChunkBody(r *bytes.Reader) (*Chunk, error) {
	count, err := r.ReadByte()
	if err != nil {
		return nil, DecodeError{Message: "truncated constant count"}
	}
	constants := make([]Value, 0, count)
	for i := 0; i < int(count); i++ {
		v, err := readValue(r)
		if err != nil {
			return nil, err
		}
		constants = append(constants, v)
	}

	var codeLen uint64
	if err := binary.Read(r, binary.LittleEndian, &codeLen); err != nil {
		return nil, DecodeError{Message: "truncated code length"}
	}
	code := make([]byte, codeLen)
	if _, err := io.ReadFull(r, code); err != nil {
		return nil, DecodeError{Message: "truncated code"}
	}

	lines, err := readLines(r, len(code))
	if err != nil {
		return nil, err
	}

	return &Chunk{Code: code, Lines: lines, Constants: constants}, nil
}

func writeFunctionPayload(buf *bytes.Buffer, fn *ObjFunction) {
	binary.Write(buf, binary.LittleEndian, uint64(len(fn.Name)))
	buf.WriteString(fn.Name)
	buf.WriteByte(byte(fn.Arity))
	writeChunkBody(buf, fn.Chunk)
}

func readFunctionPayload(r *bytes.Reader) (*ObjFunction, error) {
	var nameLen uint64
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return nil, DecodeError{Message: "truncated function name length"}
	}
	nameBytes := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return nil, DecodeError{Message: "truncated function name"}
	}
	arity, err := r.ReadByte()
	if err != nil {
		return nil, DecodeError{Message: "truncated function arity"}
	}
	chunk, err := readChunkBody(r)
	if err != nil {
		return nil, err
	}
	return &ObjFunction{Name: string(nameBytes), Arity: int(arity), Chunk: chunk}, nil
}

func writeValue(buf *bytes.Buffer, v Value) {
	switch v.Kind {
	case KindNil:
		buf.WriteByte(tagNil)
	case KindBool:
		if v.Bool {
			buf.WriteByte(tagTrue)
		} else {
			buf.WriteByte(tagFalse)
		}
	case KindNumber:
		buf.WriteByte(tagNumber)
		binary.Write(buf, binary.LittleEndian, v.Number)
	case KindObj:
		switch o := v.Obj.(type) {
		case *ObjClosure:
			buf.WriteByte(tagClosure)
			writeFunctionPayload(buf, o.Function)
		case *ObjFunction:
			buf.WriteByte(tagFunction)
			writeFunctionPayload(buf, o)
		case *ObjNative:
			buf.WriteByte(tagNative)
			buf.WriteByte(byte(o.Index))
		case *ObjString:
			buf.WriteByte(tagString)
			binary.Write(buf, binary.LittleEndian, uint64(len(o.Value)))
			buf.WriteString(o.Value)
		}
	}
}

func readValue(r *bytes.Reader) (Value, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return Value{}, DecodeError{Message: "truncated value tag"}
	}
	switch tag {
	case tagNil:
		return Nil(), nil
	case tagFalse:
		return BoolValue(false), nil
	case tagTrue:
		return BoolValue(true), nil
	case tagNumber:
		var n float64
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return Value{}, DecodeError{Message: "truncated number value"}
		}
		return NumberValue(n), nil
	case tagClosure:
		fn, err := readFunctionPayload(r)
		if err != nil {
			return Value{}, err
		}
		return ObjValue(NewClosure(fn)), nil
	case tagFunction:
		fn, err := readFunctionPayload(r)
		if err != nil {
			return Value{}, err
		}
		return ObjValue(fn), nil
	case tagNative:
		idx, err := r.ReadByte()
		if err != nil {
			return Value{}, DecodeError{Message: "truncated native index"}
		}
		if int(idx) >= len(NativeTable) {
			return Value{}, DecodeError{Message: "native function index out of range"}
		}
		entry := NativeTable[idx]
		return ObjValue(&ObjNative{Name: entry.Name, Index: int(idx), Fn: entry.Fn}), nil
	case tagString:
		var length uint64
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return Value{}, DecodeError{Message: "truncated string length"}
		}
		s := make([]byte, length)
		if _, err := io.ReadFull(r, s); err != nil {
			return Value{}, DecodeError{Message: "truncated string contents"}
		}
		return ObjValue(NewString(string(s))), nil
	default:
		return Value{}, DecodeError{Message: "unknown value tag"}
	}
}

// writeLines run-length-encodes the per-byte line map: (u8 run length, u32
// LE line) pairs, terminated by a zero run length.
func writeLines(buf *bytes.Buffer, lines []int) {
	i := 0
	for i < len(lines) {
		line := lines[i]
		run := 0
		for i < len(lines) && lines[i] == line && run < 255 {
			run++
			i++
		}
		buf.WriteByte(byte(run))
		binary.Write(buf, binary.LittleEndian, uint32(line))
	}
	buf.WriteByte(0)
}

func readLines(r *bytes.Reader, codeLen int) ([]int, error) {
	lines := make([]int, 0, codeLen)
	for {
		run, err := r.ReadByte()
		if err != nil {
			return nil, DecodeError{Message: "truncated line table"}
		}
		if run == 0 {
			break
		}
		var line uint32
		if err := binary.Read(r, binary.LittleEndian, &line); err != nil {
			return nil, DecodeError{Message: "truncated line table entry"}
		}
		for i := 0; i < int(run); i++ {
			lines = append(lines, int(line))
		}
	}
	if len(lines) != codeLen {
		return nil, DecodeError{Message: "line table length does not match code length"}
	}
	return lines, nil
}
