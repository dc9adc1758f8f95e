package media

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEncodingExhausted is returned when every codec pair was rejected by the encoder
var ErrEncodingExhausted = errors.New("failed to overlay audio with all encoder combinations")

// AttemptFailure records why one encoding attempt failed
type AttemptFailure struct {
	Attempt EncodingAttempt
	Err     error
}

// ExhaustedError reports every failed attempt.
// It matches ErrEncodingExhausted with errors.Is.
type ExhaustedError struct {
	Failures []AttemptFailure
}

func (e *ExhaustedError) Error() string {
	if len(e.Failures) == 0 {
		return ErrEncodingExhausted.Error() + ": no codec candidates configured"
	}
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Attempt, f.Err)
	}
	return fmt.Sprintf("%s (%d attempts: %s)", ErrEncodingExhausted, len(e.Failures), strings.Join(parts, "; "))
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrEncodingExhausted
}
