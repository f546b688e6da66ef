package dustfs

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry and engine operations.
// All use prefix "dustfs:" for identification. Callers should use errors.Is/errors.As.
var (
	ErrInvalidArgument  = errors.New("dustfs: invalid argument")
	ErrInvalidName      = errors.New("dustfs: invalid template name")
	ErrTemplateNotFound = errors.New("dustfs: template not found")
	ErrTemplateCompile  = errors.New("dustfs: template compilation failed")
	ErrTemplateRender   = errors.New("dustfs: template rendering failed")
)

// TemplateError wraps a failure with the template name and, when known, the file it came from.
// Use errors.Is(err, ErrTemplateCompile) and errors.As(err, &templateErr) to inspect.
type TemplateError struct {
	Template string
	File     string
	Err      error
}

// Error implements error.
func (e *TemplateError) Error() string {
	if e.File == "" || e.File == e.Template {
		return fmt.Sprintf("dustfs: template %q: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("dustfs: template %q (%s): %v", e.Template, e.File, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *TemplateError) Unwrap() error { return e.Err }

// Compile-time check that TemplateError implements error.
var _ error = (*TemplateError)(nil)

func errFileNotDefined() error {
	return fmt.Errorf("%w: file not defined", ErrInvalidArgument)
}

func errNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}
