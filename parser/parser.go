// Recursive descent parser
// https://en.wikipedia.org/wiki/Recursive_descent_parser
//
// A recursive descent parser is a top-down parser: it starts from the top
// grammar rule and works its way down into nested sub-expressions before
// reaching the leaves of the syntax tree (terminal rules).
package parser

import (
	"fmt"

	"lox/ast"
	"lox/token"
)

var comparisonTokenTypes = []token.TokenType{
	token.LARGER,
	token.LARGER_EQUAL,
	token.LESS,
	token.LESS_EQUAL,
}

var equalityTokenTypes = []token.TokenType{
	token.NOT_EQUAL,
	token.EQUAL_EQUAL,
}

var termTokenTypes = []token.TokenType{
	token.SUB,
	token.ADD,
}

var factorTokenTypes = []token.TokenType{
	token.MULT,
	token.DIV,
}

const maxArgs = 255

type Parser struct {
	tokens   []token.Token
	position int
}

// NOTE: the parser's position is always one unit ahead of the current
// token.

// Make initializes a new Parser over the tokens produced by the lexer.
func Make(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, position: 0}
}

func (parser *Parser) peek() token.Token {
	return parser.tokens[parser.position]
}

func (parser *Parser) previous() token.Token {
	return parser.tokens[parser.position-1]
}

func (parser *Parser) advance() token.Token {
	if !parser.isFinished() {
		parser.position++
	}
	return parser.previous()
}

func (parser *Parser) isFinished() bool {
	return parser.peek().Type == token.EOF
}

func (parser *Parser) checkType(tokenType token.TokenType) bool {
	if parser.isFinished() {
		return false
	}
	return parser.peek().Type == tokenType
}

func (parser *Parser) isMatch(tokenTypes []token.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if parser.checkType(tokenType) {
			parser.advance()
			return true
		}
	}
	return false
}

// Parse parses the entire token stream into a slice of Stmt nodes. Parse
// errors are collected and parsing resynchronizes at the next statement
// boundary so later errors in the same source can still be reported.
func (parser *Parser) Parse() ([]ast.Stmt, []error) {
	statements := []ast.Stmt{}
	errors := []error{}

	for !parser.isFinished() {
		stmt, err := parser.declaration()
		if err != nil {
			errors = append(errors, err)
			parser.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}

	return statements, errors
}

// synchronize discards tokens until it reaches what looks like the start of
// the next statement, so one syntax error doesn't cascade into spurious
// follow-on errors.
func (parser *Parser) synchronize() {
	parser.advance()
	for !parser.isFinished() {
		if parser.previous().Type == token.SEMICOLON {
			return
		}
		switch parser.peek().Type {
		case token.CLASS, token.FUNC, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		parser.advance()
	}
}

// declaration parses a declaration: a function, a variable, or a plain
// statement.
func (parser *Parser) declaration() (ast.Stmt, error) {
	if parser.isMatch([]token.TokenType{token.FUNC}) {
		return parser.functionDeclaration("function")
	}
	if parser.isMatch([]token.TokenType{token.VAR}) {
		return parser.variableDeclaration()
	}
	return parser.statement()
}

func (parser *Parser) functionDeclaration(kind string) (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LPA, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return nil, err
	}

	params := []token.Token{}
	if !parser.checkType(token.RPA) {
		for {
			if len(params) >= maxArgs {
				return nil, CreateSyntaxError(parser.peek().Line, "Can't have more than 255 parameters.")
			}
			param, err := parser.consume(token.IDENTIFIER, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}
	if _, err := parser.consume(token.RPA, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.LCUR, fmt.Sprintf("Expect '{' before %s body.", kind)); err != nil {
		return nil, err
	}
	body, err := parser.block()
	if err != nil {
		return nil, err
	}

	return ast.FunStmt{Name: name, Params: params, Body: body}, nil
}

// variableDeclaration parses "var name [= initializer] ;".
func (parser *Parser) variableDeclaration() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if parser.isMatch([]token.TokenType{token.ASSIGN}) {
		initializer, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := parser.consume(token.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.VarStmt{Name: name, Initializer: initializer}, nil
}

// statement parses a single statement.
func (parser *Parser) statement() (ast.Stmt, error) {
	if parser.isMatch([]token.TokenType{token.PRINT}) {
		return parser.printStatement()
	}
	if parser.isMatch([]token.TokenType{token.RETURN}) {
		return parser.returnStatement()
	}
	if parser.isMatch([]token.TokenType{token.IF}) {
		return parser.ifStatement()
	}
	if parser.isMatch([]token.TokenType{token.WHILE}) {
		return parser.whileStatement()
	}
	if parser.isMatch([]token.TokenType{token.LCUR}) {
		statements, err := parser.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Statements: statements}, nil
	}
	return parser.expressionStatement()
}

func (parser *Parser) printStatement() (ast.Stmt, error) {
	keyword := parser.previous()
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.PrintStmt{Expression: expr, Keyword: keyword}, nil
}

func (parser *Parser) returnStatement() (ast.Stmt, error) {
	keyword := parser.previous()
	var value ast.Expr
	if !parser.checkType(token.SEMICOLON) {
		var err error
		value, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(token.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (parser *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenStmt, err := parser.statement()
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Stmt
	if parser.isMatch([]token.TokenType{token.ELSE}) {
		elseStmt, err = parser.statement()
		if err != nil {
			return nil, err
		}
	}

	return ast.IfStmt{Condition: condition, Then: thenStmt, Else: elseStmt}, nil
}

func (parser *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPA, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPA, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := parser.statement()
	if err != nil {
		return nil, err
	}
	return ast.WhileStmt{Condition: condition, Body: body}, nil
}

func (parser *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.ExprStmt{Expression: expr}, nil
}

// block parses the statements between an already-consumed '{' and its
// matching '}'.
func (parser *Parser) block() ([]ast.Stmt, error) {
	statements := []ast.Stmt{}

	for !parser.checkType(token.RCUR) && !parser.isFinished() {
		stmt, err := parser.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if _, err := parser.consume(token.RCUR, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

// expression is the entry point for parsing expressions; it begins at the
// assignment rule, the lowest-precedence one.
func (parser *Parser) expression() (ast.Expr, error) {
	return parser.assignment()
}

// assignment parses "target = value", right-associative, falling through
// to logical-or when no '=' follows.
func (parser *Parser) assignment() (ast.Expr, error) {
	expr, err := parser.or()
	if err != nil {
		return nil, err
	}

	if parser.isMatch([]token.TokenType{token.ASSIGN}) {
		equals := parser.previous()
		value, err := parser.assignment()
		if err != nil {
			return nil, err
		}

		if v, ok := expr.(ast.Variable); ok {
			return ast.Assign{Name: v.Name, Value: value}, nil
		}
		return nil, CreateSyntaxError(equals.Line, "Invalid assignment target.")
	}

	return expr, nil
}

// or parses left-associative "a or b or c ...", modeled as nested Binary
// nodes - "or"/"and" are binary operators like any other, distinguished at
// compile time by their operator token.
func (parser *Parser) or() (ast.Expr, error) {
	expr, err := parser.and()
	if err != nil {
		return nil, err
	}
	for parser.isMatch([]token.TokenType{token.OR}) {
		operator := parser.previous()
		right, err := parser.and()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (parser *Parser) and() (ast.Expr, error) {
	expr, err := parser.equality()
	if err != nil {
		return nil, err
	}
	for parser.isMatch([]token.TokenType{token.AND}) {
		operator := parser.previous()
		right, err := parser.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (parser *Parser) equality() (ast.Expr, error) {
	expr, err := parser.comparison()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(equalityTokenTypes) {
		operator := parser.previous()
		right, err := parser.comparison()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (parser *Parser) comparison() (ast.Expr, error) {
	expr, err := parser.term()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(comparisonTokenTypes) {
		operator := parser.previous()
		right, err := parser.term()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (parser *Parser) term() (ast.Expr, error) {
	expr, err := parser.factor()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(termTokenTypes) {
		operator := parser.previous()
		right, err := parser.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (parser *Parser) factor() (ast.Expr, error) {
	expr, err := parser.unary()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(factorTokenTypes) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// unary parses "!a" / "-a", otherwise defers to call().
func (parser *Parser) unary() (ast.Expr, error) {
	if parser.isMatch([]token.TokenType{token.BANG, token.SUB}) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Operator: operator, Right: right}, nil
	}
	return parser.call()
}

// call parses a primary expression followed by zero or more "(args...)"
// call suffixes.
func (parser *Parser) call() (ast.Expr, error) {
	expr, err := parser.primary()
	if err != nil {
		return nil, err
	}

	for {
		if parser.isMatch([]token.TokenType{token.LPA}) {
			expr, err = parser.finishCall(expr)
			if err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return expr, nil
}

func (parser *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	args := []ast.Expr{}
	if !parser.checkType(token.RPA) {
		for {
			if len(args) >= maxArgs {
				return nil, CreateSyntaxError(parser.peek().Line, "Can't have more than 255 arguments.")
			}
			arg, err := parser.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}

	paren, err := parser.consume(token.RPA, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

// primary parses literals, variable references, and parenthesized
// expressions.
func (parser *Parser) primary() (ast.Expr, error) {
	if parser.isMatch([]token.TokenType{token.FALSE}) {
		return ast.Literal{Value: false, Line: parser.previous().Line}, nil
	}
	if parser.isMatch([]token.TokenType{token.TRUE}) {
		return ast.Literal{Value: true, Line: parser.previous().Line}, nil
	}
	if parser.isMatch([]token.TokenType{token.NIL}) {
		return ast.Literal{Value: nil, Line: parser.previous().Line}, nil
	}
	if parser.isMatch([]token.TokenType{token.NUMBER, token.STRING}) {
		tok := parser.previous()
		return ast.Literal{Value: tok.Literal, Line: tok.Line}, nil
	}
	if parser.isMatch([]token.TokenType{token.IDENTIFIER}) {
		return ast.Variable{Name: parser.previous()}, nil
	}
	if parser.isMatch([]token.TokenType{token.LPA}) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if _, err := parser.consume(token.RPA, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return expr, nil
	}

	current := parser.peek()
	return nil, CreateSyntaxError(current.Line, "Expect expression.")
}

// consume advances past the current token if it has the expected type,
// otherwise it reports a syntax error at the current token's line.
func (parser *Parser) consume(tokenType token.TokenType, errorMessage string) (token.Token, error) {
	if parser.checkType(tokenType) {
		return parser.advance(), nil
	}
	current := parser.peek()
	return token.Token{}, CreateSyntaxError(current.Line, errorMessage)
}
