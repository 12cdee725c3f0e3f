package requirement

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Form errors
var (
	ErrNilField       = errors.New("form field cannot be nil")
	ErrDuplicateField = errors.New("duplicate form field")
)

// Values holds submitted or stored configuration keyed by field key.
type Values map[string]string

// Clone returns a copy of v.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	return maps.Clone(v)
}

// Keys returns the keys of v in ascending order.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// Form is the ordered description of the fields a configuration step needs.
type Form struct {
	fields []*Field
	index  map[string]*Field
}

// NewForm creates a Form from fields, preserving their order.
func NewForm(fields ...*Field) (*Form, error) {
	f := &Form{index: make(map[string]*Field, len(fields))}
	for _, field := range fields {
		if field == nil {
			return nil, ErrNilField
		}
		if _, exists := f.index[field.Key()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, field.Key())
		}
		f.index[field.Key()] = field
		f.fields = append(f.fields, field)
	}
	return f, nil
}

// Fields returns the form fields in order.
func (f *Form) Fields() []*Field {
	return slices.Clone(f.fields)
}

// Field returns the field with the given key.
func (f *Form) Field(key string) (*Field, bool) {
	field, ok := f.index[key]
	return field, ok
}

// Keys returns the field keys in form order.
func (f *Form) Keys() []string {
	keys := make([]string, len(f.fields))
	for i, field := range f.fields {
		keys[i] = field.Key()
	}
	return keys
}

// RequiredKeys returns the keys of required fields in form order.
func (f *Form) RequiredKeys() []string {
	var keys []string
	for _, field := range f.fields {
		if field.IsRequired() {
			keys = append(keys, field.Key())
		}
	}
	return keys
}

// Validate checks input against every field and returns the normalised values.
// All problems are reported at once; when any are returned the values must not
// be stored. Empty optional fields without a default are omitted from the result.
func (f *Form) Validate(input Values) (Values, []FieldError) {
	var errs []FieldError
	out := make(Values, len(f.fields))

	for _, key := range input.Keys() {
		if _, ok := f.index[key]; !ok {
			errs = append(errs, FieldError{Field: key, Message: "is not a field of this form"})
		}
	}

	for _, field := range f.fields {
		submitted := input[field.Key()]
		if strings.TrimSpace(submitted) == "" {
			submitted = field.DefaultValue()
		}
		if strings.TrimSpace(submitted) == "" {
			if field.IsRequired() {
				errs = append(errs, FieldError{Field: field.Key(), Message: "is required"})
			}
			continue
		}
		v, msg := field.normalize(submitted)
		if msg != "" {
			errs = append(errs, FieldError{Field: field.Key(), Message: msg})
			continue
		}
		if v == "" {
			if field.IsRequired() {
				errs = append(errs, FieldError{Field: field.Key(), Message: "is required"})
			}
			continue
		}
		out[field.Key()] = v
	}

	// Rules run against the normalised submission so they can compare fields.
	for _, field := range f.fields {
		v, ok := out[field.Key()]
		if !ok || field.rule == nil {
			continue
		}
		if err := field.rule.Check(v, out.Clone()); err != nil {
			errs = append(errs, FieldError{Field: field.Key(), Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}
