package vm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lox/compiler"
	"lox/lexer"
	"lox/parser"
	"lox/vm"
)

func run(t *testing.T, source string) (string, error) {
	t.Helper()
	lx := lexer.New(source)
	tokens, err := lx.Scan()
	require.NoError(t, err)
	stmts, errs := parser.Make(tokens).Parse()
	require.Empty(t, errs)
	fn, err := compiler.Compile(stmts)
	require.NoError(t, err)

	var out bytes.Buffer
	machine := vm.New()
	machine.SetOutput(&out)
	runErr := machine.Run(fn)
	return out.String(), runErr
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestGlobalVariables(t *testing.T) {
	out, err := run(t, `var x = 10; x = x + 5; print x;`)
	require.NoError(t, err)
	assert.Equal(t, "15\n", out)
}

func TestLocalScoping(t *testing.T) {
	out, err := run(t, `
		var x = "outer";
		{
			var x = "inner";
			print x;
		}
		print x;
	`)
	require.NoError(t, err)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestIfElse(t *testing.T) {
	out, err := run(t, `
		if (1 < 2) { print "yes"; } else { print "no"; }
	`)
	require.NoError(t, err)
	assert.Equal(t, "yes\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, err := run(t, `
		var i = 0;
		var sum = 0;
		while (i < 5) {
			sum = sum + i;
			i = i + 1;
		}
		print sum;
	`)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestAndOrShortCircuit(t *testing.T) {
	out, err := run(t, `
		print false and (1/0 == 1);
		print true or (1/0 == 1);
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, err := run(t, `
		fun add(a, b) {
			return a + b;
		}
		print add(3, 4);
	`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestRecursiveFunction(t *testing.T) {
	out, err := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print missing;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable")
}

func TestTypeErrorOnArithmetic(t *testing.T) {
	_, err := run(t, `print "a" - 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be numbers.")
}

func TestCallArityMismatch(t *testing.T) {
	_, err := run(t, `
		fun one(a) { return a; }
		one(1, 2);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 1 arguments but got 2.")
}

func TestCallingNonFunction(t *testing.T) {
	_, err := run(t, `
		var x = 1;
		x();
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestClockNativeFunction(t *testing.T) {
	out, err := run(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}
