// Package assert provides fatal, caller-annotated invariant checks for
// contract violations that represent caller bugs rather than recoverable
// errors.
package assert

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Assert panics with a caller-annotated message when condition is false.
// Returns the condition so call sites can chain it in an if-statement.
func Assert(condition bool, args ...any) bool {
	if condition {
		return true
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "unknown"
		line = 0
	}
	filename := filepath.Base(file)

	if len(args) > 0 {
		format, isString := args[0].(string)
		if !isString {
			panic(fmt.Sprintf("assertion failed at %s:%d", filename, line))
		}
		message := fmt.Sprintf(format, args[1:]...)
		panic(fmt.Sprintf("assertion failed: %s at %s:%d", message, filename, line))
	}
	panic(fmt.Sprintf("assertion failed at %s:%d", filename, line))
}

// NoError is a shorthand for Assert(err == nil, ...).
func NoError(err error) {
	Assert(err == nil, "expected no error, got: %v", err)
}
