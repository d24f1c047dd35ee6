package ast

import "lox/token"

// Binary represents both arithmetic/comparison expressions (a + b, a < b)
// and the short-circuiting logical operators (a and b, a or b) - all of
// them are "binary operators" over a left and right operand, distinguished
// at compile time by Operator.Type.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (b Binary) Accept(v ExprVisitor) any { return v.VisitBinary(b) }

// Unary represents "!a" or "-a".
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (u Unary) Accept(v ExprVisitor) any { return v.VisitUnary(u) }

// Literal represents a literal nil/true/false/number/string value. Value
// holds nil, bool, float64, or string respectively.
type Literal struct {
	Value any
	Line  int
}

func (l Literal) Accept(v ExprVisitor) any { return v.VisitLiteral(l) }

// Variable represents reading the value bound to a name.
type Variable struct {
	Name token.Token
}

func (va Variable) Accept(v ExprVisitor) any { return v.VisitVariable(va) }

// Assign represents "name = value". Receiver is reserved for property
// assignment (obj.field = value) and is always nil in the core language -
// there is no field access without classes.
type Assign struct {
	Receiver Expr
	Name     token.Token
	Value    Expr
}

func (a Assign) Accept(v ExprVisitor) any { return v.VisitAssign(a) }

// Call represents "callee(args...)". Paren is the closing paren's token,
// kept so a runtime error raised while evaluating the call can point at a
// sensible line.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (c Call) Accept(v ExprVisitor) any { return v.VisitCall(c) }
