package highs

import "fmt"

// Error represents a HiGHS error with context about which operation failed.
type Error struct {
	Op     string // Operation that failed (e.g., "Run", "SetFloatOption")
	Status Status // HiGHS status code
	Msg    string // Additional context
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("highs: %s failed: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("highs: %s failed with status %s", e.Op, e.Status)
}

// newError returns nil for OK and Warning, an *Error otherwise.
func newError(op string, status Status) error {
	if status == StatusOK || status == StatusWarning {
		return nil
	}
	return &Error{Op: op, Status: status}
}

func newErrorMsg(op, msg string) error {
	return &Error{Op: op, Status: StatusError, Msg: msg}
}
