package bytecode

import "fmt"

// DecodeError reports malformed bytecode encountered while reading a
// serialized chunk (spec.md §7, mapped by the CLI to exit code 74).
type DecodeError struct {
	Message string
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("malformed bytecode: %s", e.Message)
}
