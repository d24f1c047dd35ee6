package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lox/bytecode"
)

func buildScript(t *testing.T) *bytecode.ObjFunction {
	t.Helper()
	script := bytecode.NewFunction("", 0)
	chunk := script.Chunk

	nameIdx, err := chunk.AddConstant(bytecode.ObjValue(bytecode.NewString("greeting")))
	require.NoError(t, err)
	valIdx, err := chunk.AddConstant(bytecode.ObjValue(bytecode.NewString("hello")))
	require.NoError(t, err)

	chunk.WriteOp(bytecode.OpConstant, 1)
	chunk.WriteByte(byte(valIdx), 1)
	chunk.WriteOp(bytecode.OpDefineGlobal, 1)
	chunk.WriteByte(byte(nameIdx), 1)
	chunk.WriteOp(bytecode.OpNil, 2)
	chunk.WriteOp(bytecode.OpReturn, 2)

	script.IsScript = true
	return script
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	script := buildScript(t)
	data := bytecode.Encode(script)
	require.Equal(t, byte(bytecode.ScriptMagic), data[0])

	decoded, err := bytecode.Decode(data)
	require.NoError(t, err)
	assert.True(t, decoded.IsScript)
	assert.Equal(t, script.Chunk.Code, decoded.Chunk.Code)
	assert.Equal(t, script.Chunk.Lines, decoded.Chunk.Lines)
	require.Len(t, decoded.Chunk.Constants, 2)
	assert.Equal(t, "greeting", decoded.Chunk.Constants[0].Obj.(*bytecode.ObjString).Value)
	assert.Equal(t, "hello", decoded.Chunk.Constants[1].Obj.(*bytecode.ObjString).Value)
}

func TestDecodeRejectsMissingMagic(t *testing.T) {
	_, err := bytecode.Decode([]byte{0x00, 0x00})
	require.Error(t, err)
	assert.IsType(t, bytecode.DecodeError{}, err)
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	script := buildScript(t)
	data := bytecode.Encode(script)
	_, err := bytecode.Decode(data[:len(data)-3])
	require.Error(t, err)
	assert.IsType(t, bytecode.DecodeError{}, err)
}

func TestEncodeNestedFunctionRoundTrips(t *testing.T) {
	script := bytecode.NewFunction("", 0)
	nested := bytecode.NewFunction("helper", 1)
	nested.Chunk.WriteOp(bytecode.OpGetLocal, 3)
	nested.Chunk.WriteByte(1, 3)
	nested.Chunk.WriteOp(bytecode.OpReturn, 3)

	idx, err := script.Chunk.AddConstant(bytecode.ObjValue(nested))
	require.NoError(t, err)
	script.Chunk.WriteOp(bytecode.OpClosure, 1)
	script.Chunk.WriteByte(byte(idx), 1)
	script.Chunk.WriteOp(bytecode.OpNil, 1)
	script.Chunk.WriteOp(bytecode.OpReturn, 1)
	script.IsScript = true

	data := bytecode.Encode(script)
	decoded, err := bytecode.Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Chunk.Constants, 1)
	fn := decoded.Chunk.Constants[0].Obj.(*bytecode.ObjFunction)
	assert.Equal(t, "helper", fn.Name)
	assert.Equal(t, 1, fn.Arity)
	assert.Equal(t, nested.Chunk.Code, fn.Chunk.Code)
}

func TestRunLengthEncodedLinesHandleLongRuns(t *testing.T) {
	c := bytecode.NewChunk()
	for i := 0; i < 300; i++ {
		c.WriteOp(bytecode.OpNil, 42)
	}
	c.WriteOp(bytecode.OpReturn, 43)
	script := &bytecode.ObjFunction{IsScript: true, Chunk: c}

	data := bytecode.Encode(script)
	decoded, err := bytecode.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, c.Lines, decoded.Chunk.Lines)
}
