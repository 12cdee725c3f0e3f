package requirement

import (
	"fmt"
	"strings"
)

// FieldError is a problem with one submitted field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Message
}

// ValidationError is returned by Configure when the submission is rejected.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	RequirementID string
	Fields        []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%s for %s: %s", ErrValidation, e.RequirementID, strings.Join(msgs, "; "))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Messages groups the field messages by field key.
func (e *ValidationError) Messages() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = append(out[f.Field], f.Message)
	}
	return out
}

// ConfigurationResult is returned by a successful Configure call.
type ConfigurationResult struct {
	RequirementID string
	// Values are the normalised values that were committed.
	Values Values
	// Completed is the requirement's completion state right after the commit.
	Completed bool
}
