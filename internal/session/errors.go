package session

import "fmt"

// ErrEmptyInput reports a blank required input. The session state does
// not change; callers re-prompt.
type ErrEmptyInput struct {
	Field string
}

func (e *ErrEmptyInput) Error() string {
	return fmt.Sprintf("%s cannot be empty", e.Field)
}

// ErrBadState reports an operation attempted outside its legal state.
type ErrBadState struct {
	State State
	Op    string
}

func (e *ErrBadState) Error() string {
	return fmt.Sprintf("cannot %s in state %s", e.Op, e.State)
}
