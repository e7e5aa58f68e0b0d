package resolve

import "errors"

var (
	// ErrEmptyView is returned when the view name is blank.
	ErrEmptyView = errors.New("resolve: view name is required")
	// ErrNoCandidates is returned when resolution yields no template path.
	ErrNoCandidates = errors.New("resolve: no candidate templates")
)
