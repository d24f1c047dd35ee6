// Package compiler implements the single-pass AST-to-bytecode compiler: an
// ast.ExprVisitor/ast.StmtVisitor that emits bytecode directly as it walks
// the tree, in the style of the teacher's ast_compiler.go, generalized to
// cover nested function compilation, jump patching for if/while, and the
// full global/local variable discipline spec.md §4.3 describes.
package compiler

import (
	"lox/ast"
	"lox/bytecode"
	"lox/token"
)

// FunctionType distinguishes the compiler instance building the implicit
// top-level script from one building a user-defined function. Method and
// Initializer are part of the data model spec.md §4.3 describes for a
// future class system; nothing in this compiler ever produces them, but
// VisitReturnStmt's policy switch is written against all four so that
// adding classes later only means adding two more ways to reach them.
type FunctionType int

const (
	TypeScript FunctionType = iota
	TypeFunction
	TypeMethod
	TypeInitializer
)

// local is one entry in a Compiler's local-variable stack.
type local struct {
	name  string
	depth int // -1 while the variable's initializer is still being compiled
	slot  int
}

// Compiler compiles one function body (or the top-level script) to a
// bytecode.Chunk. Nested function literals get their own Compiler, linked
// to the enclosing one so the finished function can be embedded as a
// constant in the enclosing chunk (spec.md §4.3).
type Compiler struct {
	enclosing  *Compiler
	function   *bytecode.ObjFunction
	fnType     FunctionType
	locals     []local
	scopeDepth int
	line       int
}

func newCompiler(enclosing *Compiler, fnType FunctionType, name string) *Compiler {
	c := &Compiler{enclosing: enclosing, fnType: fnType}
	c.function = bytecode.NewFunction(name, 0)
	c.function.IsScript = fnType == TypeScript
	// Slot 0 is reserved - a placeholder today, "this" once methods exist.
	c.locals = append(c.locals, local{name: "", depth: 0, slot: 0})
	return c
}

// Compile compiles a complete program (the statements of one source file or
// REPL line) into the implicit top-level script function.
func Compile(statements []ast.Stmt) (fn *bytecode.ObjFunction, err error) {
	c := newCompiler(nil, TypeScript, "")

	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(CompileError); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range statements {
		stmt.Accept(c)
	}
	fn = c.finish(c.line)
	return fn, nil
}

func (c *Compiler) chunk() *bytecode.Chunk { return c.function.Chunk }

// finish emits the function's unconditional trailing return - every
// compiled function ends in OP_RETURN regardless of whether its body
// already returned explicitly (spec.md §3's Chunk invariant) - and hands
// back the finished template.
func (c *Compiler) finish(line int) *bytecode.ObjFunction {
	c.emit(bytecode.OpNil, line)
	c.emit(bytecode.OpReturn, line)
	return c.function
}

func (c *Compiler) emit(op bytecode.OpCode, line int) {
	c.chunk().WriteOp(op, line)
}

func (c *Compiler) emitByte(b byte, line int) {
	c.chunk().WriteByte(b, line)
}

func (c *Compiler) addConstant(v bytecode.Value, line int) int {
	idx, err := c.chunk().AddConstant(v)
	if err != nil {
		panic(CompileError{Line: line, Message: err.Error()})
	}
	return idx
}

func (c *Compiler) identifierConstant(name string, line int) int {
	return c.addConstant(bytecode.ObjValue(bytecode.NewString(name)), line)
}

func (c *Compiler) emitJump(op bytecode.OpCode, line int) int {
	c.emit(op, line)
	pos := len(c.chunk().Code)
	c.chunk().WriteUint16(0, line)
	return pos
}

func (c *Compiler) patchJump(pos int) {
	offset := len(c.chunk().Code) - (pos + 2)
	if offset > 0xFFFF {
		panic(CompileError{Line: c.line, Message: "Too much code to jump over."})
	}
	c.chunk().PatchUint16(pos, uint16(offset))
}

func (c *Compiler) emitLoop(loopStart int, line int) {
	c.emit(bytecode.OpLoop, line)
	offset := len(c.chunk().Code) + 2 - loopStart
	if offset > 0xFFFF {
		panic(CompileError{Line: line, Message: "Loop body too large."})
	}
	c.chunk().WriteUint16(uint16(offset), line)
}

// --- scope & locals -------------------------------------------------------

func (c *Compiler) beginScope() { c.scopeDepth++ }

// endScope pops every local declared in the scope just exited, one OP_POP
// per local (spec.md §4.3 - not a single batched instruction).
func (c *Compiler) endScope(line int) {
	c.scopeDepth--
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.emit(bytecode.OpPop, line)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// declareVariable registers name as a new local in the current scope. It is
// a no-op at global scope - globals are resolved dynamically by name, with
// no compile-time slot.
func (c *Compiler) declareVariable(name token.Token) {
	if c.scopeDepth == 0 {
		return
	}
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].depth != -1 && c.locals[i].depth < c.scopeDepth {
			break
		}
		if c.locals[i].name == name.Lexeme {
			panic(CompileError{Line: name.Line, Message: "Already a variable with this name in this scope."})
		}
	}
	if len(c.locals) >= bytecode.MaxLocals {
		panic(CompileError{Line: name.Line, Message: "Too many local variables in function."})
	}
	c.locals = append(c.locals, local{name: name.Lexeme, depth: -1, slot: len(c.locals)})
}

func (c *Compiler) markInitialized() {
	if c.scopeDepth == 0 {
		return
	}
	c.locals[len(c.locals)-1].depth = c.scopeDepth
}

// defineVariable completes a variable declaration: for a global it emits
// OP_DEFINE_GLOBAL; for a local it just marks the slot initialized, since
// its value is already sitting in the right stack slot.
func (c *Compiler) defineVariable(name token.Token) {
	if c.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	idx := c.identifierConstant(name.Lexeme, name.Line)
	c.emit(bytecode.OpDefineGlobal, name.Line)
	c.emitByte(byte(idx), name.Line)
}

// resolveLocal finds name among this function's locals, walking innermost
// scope outward. It returns -1 if name is not a local here.
func (c *Compiler) resolveLocal(name string, line int) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			if c.locals[i].depth == -1 {
				panic(CompileError{Line: line, Message: "Can't read local variable in its own initializer."})
			}
			return c.locals[i].slot
		}
	}
	return -1
}

// --- expressions -----------------------------------------------------------

func (c *Compiler) VisitLiteral(lit ast.Literal) any {
	c.line = lit.Line
	switch val := lit.Value.(type) {
	case nil:
		c.emit(bytecode.OpNil, lit.Line)
	case bool:
		if val {
			c.emit(bytecode.OpTrue, lit.Line)
		} else {
			c.emit(bytecode.OpFalse, lit.Line)
		}
	case float64:
		idx := c.addConstant(bytecode.NumberValue(val), lit.Line)
		c.emit(bytecode.OpConstant, lit.Line)
		c.emitByte(byte(idx), lit.Line)
	case string:
		idx := c.addConstant(bytecode.ObjValue(bytecode.NewString(val)), lit.Line)
		c.emit(bytecode.OpConstant, lit.Line)
		c.emitByte(byte(idx), lit.Line)
	}
	return nil
}

func (c *Compiler) VisitVariable(v ast.Variable) any {
	c.line = v.Name.Line
	if slot := c.resolveLocal(v.Name.Lexeme, v.Name.Line); slot != -1 {
		c.emit(bytecode.OpGetLocal, v.Name.Line)
		c.emitByte(byte(slot), v.Name.Line)
		return nil
	}
	idx := c.identifierConstant(v.Name.Lexeme, v.Name.Line)
	c.emit(bytecode.OpGetGlobal, v.Name.Line)
	c.emitByte(byte(idx), v.Name.Line)
	return nil
}

func (c *Compiler) VisitAssign(a ast.Assign) any {
	a.Value.Accept(c)
	c.line = a.Name.Line
	if slot := c.resolveLocal(a.Name.Lexeme, a.Name.Line); slot != -1 {
		c.emit(bytecode.OpSetLocal, a.Name.Line)
		c.emitByte(byte(slot), a.Name.Line)
		return nil
	}
	idx := c.identifierConstant(a.Name.Lexeme, a.Name.Line)
	c.emit(bytecode.OpSetGlobal, a.Name.Line)
	c.emitByte(byte(idx), a.Name.Line)
	return nil
}

func (c *Compiler) VisitUnary(u ast.Unary) any {
	u.Right.Accept(c)
	c.line = u.Operator.Line
	switch u.Operator.Type {
	case token.SUB:
		c.emit(bytecode.OpNeg, u.Operator.Line)
	case token.BANG:
		c.emit(bytecode.OpNot, u.Operator.Line)
	}
	return nil
}

func (c *Compiler) VisitBinary(b ast.Binary) any {
	switch b.Operator.Type {
	case token.OR:
		b.Left.Accept(c)
		c.line = b.Operator.Line
		endJump := c.emitJump(bytecode.OpJumpIfTruePeek, b.Operator.Line)
		c.emit(bytecode.OpPop, b.Operator.Line)
		b.Right.Accept(c)
		c.patchJump(endJump)
		return nil
	case token.AND:
		b.Left.Accept(c)
		c.line = b.Operator.Line
		endJump := c.emitJump(bytecode.OpJumpIfFalsePeek, b.Operator.Line)
		c.emit(bytecode.OpPop, b.Operator.Line)
		b.Right.Accept(c)
		c.patchJump(endJump)
		return nil
	}

	b.Left.Accept(c)
	b.Right.Accept(c)
	c.line = b.Operator.Line
	switch b.Operator.Type {
	case token.ADD:
		c.emit(bytecode.OpAdd, b.Operator.Line)
	case token.SUB:
		c.emit(bytecode.OpSub, b.Operator.Line)
	case token.MULT:
		c.emit(bytecode.OpMul, b.Operator.Line)
	case token.DIV:
		c.emit(bytecode.OpDiv, b.Operator.Line)
	case token.EQUAL_EQUAL:
		c.emit(bytecode.OpEqual, b.Operator.Line)
	case token.NOT_EQUAL:
		c.emit(bytecode.OpEqual, b.Operator.Line)
		c.emit(bytecode.OpNot, b.Operator.Line)
	case token.LARGER:
		c.emit(bytecode.OpGreater, b.Operator.Line)
	case token.LARGER_EQUAL:
		c.emit(bytecode.OpGreaterEqual, b.Operator.Line)
	case token.LESS:
		c.emit(bytecode.OpLess, b.Operator.Line)
	case token.LESS_EQUAL:
		c.emit(bytecode.OpLessEqual, b.Operator.Line)
	}
	return nil
}

func (c *Compiler) VisitCall(call ast.Call) any {
	call.Callee.Accept(c)
	if len(call.Args) > 255 {
		panic(CompileError{Line: call.Paren.Line, Message: "Can't have more than 255 arguments."})
	}
	for _, arg := range call.Args {
		arg.Accept(c)
	}
	c.line = call.Paren.Line
	c.emit(bytecode.OpCall, call.Paren.Line)
	c.emitByte(byte(len(call.Args)), call.Paren.Line)
	return nil
}

// --- statements --------------------------------------------------------

func (c *Compiler) VisitExprStmt(stmt ast.ExprStmt) any {
	stmt.Expression.Accept(c)
	c.emit(bytecode.OpPop, c.line)
	return nil
}

func (c *Compiler) VisitPrintStmt(stmt ast.PrintStmt) any {
	stmt.Expression.Accept(c)
	c.line = stmt.Keyword.Line
	c.emit(bytecode.OpPrint, stmt.Keyword.Line)
	return nil
}

func (c *Compiler) VisitVarStmt(stmt ast.VarStmt) any {
	c.declareVariable(stmt.Name)
	if stmt.Initializer != nil {
		stmt.Initializer.Accept(c)
	} else {
		c.emit(bytecode.OpNil, stmt.Name.Line)
	}
	c.defineVariable(stmt.Name)
	return nil
}

func (c *Compiler) VisitBlockStmt(stmt ast.BlockStmt) any {
	c.beginScope()
	for _, s := range stmt.Statements {
		s.Accept(c)
	}
	c.endScope(c.line)
	return nil
}

func (c *Compiler) VisitIfStmt(stmt ast.IfStmt) any {
	stmt.Condition.Accept(c)
	thenJump := c.emitJump(bytecode.OpJumpIfFalsePop, c.line)
	stmt.Then.Accept(c)

	if stmt.Else != nil {
		elseJump := c.emitJump(bytecode.OpJump, c.line)
		c.patchJump(thenJump)
		stmt.Else.Accept(c)
		c.patchJump(elseJump)
	} else {
		c.patchJump(thenJump)
	}
	return nil
}

func (c *Compiler) VisitWhileStmt(stmt ast.WhileStmt) any {
	loopStart := len(c.chunk().Code)
	stmt.Condition.Accept(c)
	exitJump := c.emitJump(bytecode.OpJumpIfFalsePop, c.line)
	stmt.Body.Accept(c)
	c.emitLoop(loopStart, c.line)
	c.patchJump(exitJump)
	return nil
}

func (c *Compiler) VisitFunStmt(stmt ast.FunStmt) any {
	if c.scopeDepth > 0 {
		c.declareVariable(stmt.Name)
		c.markInitialized()
	}

	child := newCompiler(c, TypeFunction, stmt.Name.Lexeme)
	if len(stmt.Params) > 255 {
		panic(CompileError{Line: stmt.Name.Line, Message: "Can't have more than 255 parameters."})
	}
	child.function.Arity = len(stmt.Params)
	child.beginScope()
	for _, p := range stmt.Params {
		child.declareVariable(p)
		child.markInitialized()
	}
	for _, s := range stmt.Body {
		s.Accept(child)
	}
	fn := child.finish(stmt.Name.Line)

	idx := c.addConstant(bytecode.ObjValue(fn), stmt.Name.Line)
	c.emit(bytecode.OpClosure, stmt.Name.Line)
	c.emitByte(byte(idx), stmt.Name.Line)

	c.defineVariable(stmt.Name)
	return nil
}

func (c *Compiler) VisitReturnStmt(stmt ast.ReturnStmt) any {
	if c.fnType == TypeScript {
		panic(CompileError{Line: stmt.Keyword.Line, Message: "Can't return from top-level code."})
	}
	if stmt.Value == nil {
		c.emit(bytecode.OpNil, stmt.Keyword.Line)
	} else {
		if c.fnType == TypeInitializer {
			panic(CompileError{Line: stmt.Keyword.Line, Message: "Can't return a value from an initializer."})
		}
		stmt.Value.Accept(c)
	}
	c.emit(bytecode.OpReturn, stmt.Keyword.Line)
	return nil
}
