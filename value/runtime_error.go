package value

import (
	"fmt"

	"github.com/wmedrano/spore/sporeerr"
)

// RuntimeError is the error a native built-in returns to fail its call.
// Unlike sporeerr.Error, it can carry the offending Values themselves
// (Context) so that Vm.recordError can attach them to the heap-resident
// DetailedError it builds for last_error, instead of only a formatted
// message string (§4.5, §4.7: "the embedder can format rich diagnostics
// without parsing an error message").
type RuntimeError struct {
	Kind    sporeerr.Kind
	Message string
	Context []Value
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 %s: %s", e.Kind, e.Message)
}

// ErrorKind implements sporeerr.KindedError.
func (e RuntimeError) ErrorKind() sporeerr.Kind { return e.Kind }
