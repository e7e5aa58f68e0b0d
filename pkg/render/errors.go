package render

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTemplateNotFound is matched by every *NotFoundError.
	ErrTemplateNotFound = errors.New("render: template not found")
	// ErrNestingTooDeep stops render_model recursion that never bottoms out.
	ErrNestingTooDeep = errors.New("render: nested render depth exceeded")
)

// NotFoundError reports the candidates tried when no template matched.
type NotFoundError struct {
	View       string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("render: no template for view %q: no candidates", e.View)
	}
	return fmt.Sprintf("render: no template for view %q (tried %s)", e.View, strings.Join(e.Candidates, ", "))
}

// Is reports ErrTemplateNotFound as a match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}
