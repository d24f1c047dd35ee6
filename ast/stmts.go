package ast

import "lox/token"

// ExprStmt evaluates an expression and discards the result.
type ExprStmt struct {
	Expression Expr
}

func (e ExprStmt) Accept(v StmtVisitor) any { return v.VisitExprStmt(e) }

// PrintStmt evaluates an expression and prints it followed by a newline.
type PrintStmt struct {
	Expression Expr
	Keyword    token.Token
}

func (p PrintStmt) Accept(v StmtVisitor) any { return v.VisitPrintStmt(p) }

// VarStmt declares a variable, optionally with an initializer. A nil
// Initializer means the variable starts out nil.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

func (va VarStmt) Accept(v StmtVisitor) any { return v.VisitVarStmt(va) }

// BlockStmt is a brace-delimited sequence of statements introducing a new
// lexical scope.
type BlockStmt struct {
	Statements []Stmt
}

func (b BlockStmt) Accept(v StmtVisitor) any { return v.VisitBlockStmt(b) }

// IfStmt is "if (Condition) Then [else Else]". Else is nil when there is no
// else branch.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (i IfStmt) Accept(v StmtVisitor) any { return v.VisitIfStmt(i) }

// WhileStmt is "while (Condition) Body".
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (w WhileStmt) Accept(v StmtVisitor) any { return v.VisitWhileStmt(w) }

// FunStmt declares a named function: "fun Name(Params...) { Body }".
type FunStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (f FunStmt) Accept(v StmtVisitor) any { return v.VisitFunStmt(f) }

// ReturnStmt is "return [Value];". Value is nil for a bare "return;".
// Keyword is the `return` token, used to report top-level-return errors at
// the right line.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (r ReturnStmt) Accept(v StmtVisitor) any { return v.VisitReturnStmt(r) }
