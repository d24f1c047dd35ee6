package lexer

import "fmt"

// Error is a lexical error tied to the source line on which it occurred. It
// satisfies the compile-error half of the error taxonomy (exit code 65).
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}
