package vm

import "strings"

// RuntimeError is raised by the VM's fetch-decode-execute loop: a type
// error, an undefined variable, an arity mismatch, anything the compiler
// can't rule out ahead of time. The CLI maps it to exit code 70.
type RuntimeError struct {
	Message   string
	Backtrace []string
}

func (e RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, line := range e.Backtrace {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}
