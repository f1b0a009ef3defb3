package composer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyWorkingSet is returned by Compose when no image is loaded.
	ErrEmptyWorkingSet = errors.New("working set is empty")

	// ErrNoComposition is reported by Save when Compose has not succeeded yet.
	ErrNoComposition = errors.New("nothing composed yet")
)

// PartialSaveError reports the steps of a Save that failed. Files written by
// the other steps are left in place.
type PartialSaveError struct {
	Failures []error
}

func (e *PartialSaveError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("save incomplete (%d failed): %s", len(e.Failures), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *PartialSaveError) Unwrap() []error {
	return e.Failures
}
