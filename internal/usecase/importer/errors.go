package importer

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/simaogato/wealthtrack/internal/domain"
)

// ValidationError lists every problem that made an import fail.
// It matches domain.ErrInvalidInput with errors.Is.
type ValidationError struct {
	errs *multierror.Error
}

func newValidationError(err error) *ValidationError {
	return &ValidationError{errs: multierror.Append(nil, err)}
}

// Problems returns one human readable line per violation
func (e *ValidationError) Problems() []string {
	out := make([]string, 0, e.errs.Len())
	for _, err := range e.errs.Errors {
		out = append(out, err.Error())
	}
	return out
}

func (e *ValidationError) Error() string {
	problems := e.Problems()
	if len(problems) == 1 {
		return "import rejected: " + problems[0]
	}
	return fmt.Sprintf("import rejected with %d problems: %s", len(problems), strings.Join(problems, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return append([]error{domain.ErrInvalidInput}, e.errs.Errors...)
}
