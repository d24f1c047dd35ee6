package bytecode

import (
	"strconv"
)

// Kind tags a Value's variant.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObj
)

// Value is the tagged runtime value every opcode handler switches on. Heap
// variants (string, function, closure, native) carry a pointer in Obj;
// ordinary Go garbage collection - which is already cycle-safe - is the
// tracing collector spec.md §9 asks for (see DESIGN.md).
type Value struct {
	Kind   Kind
	Number float64
	Bool   bool
	Obj    Obj
}

func Nil() Value               { return Value{Kind: KindNil} }
func BoolValue(b bool) Value   { return Value{Kind: KindBool, Bool: b} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }
func ObjValue(o Obj) Value     { return Value{Kind: KindObj, Obj: o} }

func (v Value) IsNil() bool { return v.Kind == KindNil }

// Truthy reports whether v is truthy: everything but nil and false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool
	default:
		return true
	}
}

// Equal implements the Equal opcode's semantics: different tags are never
// equal, NaN != NaN, heap objects other than strings compare by identity.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Number == b.Number
	case KindObj:
		if as, ok := a.Obj.(*ObjString); ok {
			bs, ok := b.Obj.(*ObjString)
			return ok && as.Value == bs.Value
		}
		return a.Obj == b.Obj
	default:
		return false
	}
}

// String renders v the way OP_PRINT does.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindObj:
		return v.Obj.String()
	default:
		return "<invalid value>"
	}
}

// Obj is implemented by every heap-resident value variant.
type Obj interface {
	objMarker()
	String() string
}

// ObjString is an immutable, shared, UTF-8 byte sequence.
type ObjString struct {
	Value string
}

func NewString(s string) *ObjString { return &ObjString{Value: s} }
func (*ObjString) objMarker()        {}
func (s *ObjString) String() string  { return s.Value }

// ObjFunction is a compiled function template: a Chunk plus its arity and
// name. IsScript marks the implicit top-level function, the only one
// without a name (spec.md §3).
type ObjFunction struct {
	Name     string
	Arity    int
	Chunk    *Chunk
	IsScript bool
}

func NewFunction(name string, arity int) *ObjFunction {
	return &ObjFunction{Name: name, Arity: arity, Chunk: NewChunk()}
}

func (*ObjFunction) objMarker() {}

func (f *ObjFunction) String() string {
	if f.IsScript {
		return "<script>"
	}
	return "<fn " + f.Name + ">"
}

// ObjClosure wraps a Function for execution. The core has no upvalue
// capture (spec.md Non-goals), so a closure holds only its function
// template; it has no upvalue vector.
type ObjClosure struct {
	Function *ObjFunction
}

func NewClosure(fn *ObjFunction) *ObjClosure { return &ObjClosure{Function: fn} }
func (*ObjClosure) objMarker()                {}
func (c *ObjClosure) String() string          { return c.Function.String() }

// NativeFn is a host-implemented callable.
type NativeFn func(args []Value) (Value, error)

// ObjNative is a registered native function. Index is its position in
// NativeTable, the byte written by the serializer for a NativeFn constant.
type ObjNative struct {
	Name  string
	Index int
	Fn    NativeFn
}

func (*ObjNative) objMarker()     {}
func (*ObjNative) String() string { return "<native fn>" }
