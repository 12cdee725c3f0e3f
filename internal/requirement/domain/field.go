package requirement

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// FieldType defines the kind of input a configuration field accepts.
type FieldType string

const (
	// FieldTypeText is a single-line text input.
	FieldTypeText FieldType = "text"
	// FieldTypeTextarea is a multi-line text input.
	FieldTypeTextarea FieldType = "textarea"
	// FieldTypeNumber is a numeric input.
	FieldTypeNumber FieldType = "number"
	// FieldTypeBoolean is a true/false toggle.
	FieldTypeBoolean FieldType = "boolean"
	// FieldTypeEmail is an email address.
	FieldTypeEmail FieldType = "email"
	// FieldTypeURL is an absolute URL.
	FieldTypeURL FieldType = "url"
	// FieldTypeSelect is a single choice from Options.
	FieldTypeSelect FieldType = "select"
	// FieldTypeMultiSelect is a comma-separated list of choices from Options.
	FieldTypeMultiSelect FieldType = "multi-select"
)

// IsValid returns true if the field type is a known type.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeBoolean,
		FieldTypeEmail, FieldTypeURL, FieldTypeSelect, FieldTypeMultiSelect:
		return true
	default:
		return false
	}
}

// RequiresOptions returns true if the field type requires options to be set.
func (t FieldType) RequiresOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeMultiSelect
}

// Field errors
var (
	ErrFieldEmptyKey       = errors.New("field key cannot be empty")
	ErrFieldEmptyLabel     = errors.New("field label cannot be empty")
	ErrFieldInvalidType    = errors.New("field type must be text, textarea, number, boolean, email, url, select, or multi-select")
	ErrFieldEmptyOptions   = errors.New("field options cannot be empty for select/multi-select types")
	ErrFieldInvalidPattern = errors.New("field pattern is not a valid regular expression")
	ErrFieldInvalidDefault = errors.New("field default is not a valid value")
)

// FieldRule is an additional check run after a field's own type validation.
// values holds the whole normalised submission so rules can compare fields.
type FieldRule interface {
	Check(value string, values Values) error
}

// FieldRuleFunc adapts a function to the FieldRule interface.
type FieldRuleFunc func(value string, values Values) error

// Check calls f(value, values).
func (f FieldRuleFunc) Check(value string, values Values) error {
	return f(value, values)
}

// Field is one input of a configuration form. Its key is also the setting key
// the accepted value is stored under.
type Field struct {
	key          string
	label        string
	description  string
	fieldType    FieldType
	required     bool
	defaultValue string
	options      []string
	pattern      *regexp.Regexp
	rule         FieldRule
}

// FieldOption configures optional Field properties.
type FieldOption func(*Field) error

// WithDescription sets the help text.
func WithDescription(d string) FieldOption {
	return func(f *Field) error {
		f.description = d
		return nil
	}
}

// Required marks the field as required.
func Required() FieldOption {
	return func(f *Field) error {
		f.required = true
		return nil
	}
}

// WithDefault sets the value used when the field is submitted empty.
func WithDefault(v string) FieldOption {
	return func(f *Field) error {
		f.defaultValue = v
		return nil
	}
}

// WithOptions sets the available choices for select/multi-select types.
func WithOptions(options ...string) FieldOption {
	return func(f *Field) error {
		f.options = options
		return nil
	}
}

// WithPattern restricts text values to those fully matching expr.
func WithPattern(expr string) FieldOption {
	return func(f *Field) error {
		re, err := regexp.Compile(`^(?:` + expr + `)$`)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrFieldInvalidPattern, err)
		}
		f.pattern = re
		return nil
	}
}

// WithRule attaches an extra validation rule.
func WithRule(rule FieldRule) FieldOption {
	return func(f *Field) error {
		f.rule = rule
		return nil
	}
}

// NewField creates a new Field with validation.
func NewField(key, label string, fieldType FieldType, opts ...FieldOption) (*Field, error) {
	if key == "" {
		return nil, ErrFieldEmptyKey
	}
	if label == "" {
		return nil, ErrFieldEmptyLabel
	}
	if !fieldType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrFieldInvalidType, fieldType)
	}

	f := &Field{key: key, label: label, fieldType: fieldType}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
	}

	if fieldType.RequiresOptions() && len(f.options) == 0 {
		return nil, fmt.Errorf("field %s: %w", key, ErrFieldEmptyOptions)
	}
	if f.defaultValue != "" {
		if _, msg := f.normalize(f.defaultValue); msg != "" {
			return nil, fmt.Errorf("field %s: %w: %s", key, ErrFieldInvalidDefault, msg)
		}
	}
	return f, nil
}

// Key returns the field's unique identifier.
func (f *Field) Key() string {
	return f.key
}

// Label returns the human-readable label.
func (f *Field) Label() string {
	return f.label
}

// Description returns the help text.
func (f *Field) Description() string {
	return f.description
}

// Type returns the input type.
func (f *Field) Type() FieldType {
	return f.fieldType
}

// IsRequired returns whether a value must be submitted.
func (f *Field) IsRequired() bool {
	return f.required
}

// DefaultValue returns the default value.
func (f *Field) DefaultValue() string {
	return f.defaultValue
}

// Options returns the available choices for select/multi-select types.
func (f *Field) Options() []string {
	return slices.Clone(f.options)
}

// Pattern returns the anchored pattern source, or "" when unset.
func (f *Field) Pattern() string {
	if f.pattern == nil {
		return ""
	}
	return f.pattern.String()
}

// normalize checks raw against the field type and returns the canonical value.
// A non-empty message means the value was rejected.
func (f *Field) normalize(raw string) (string, string) {
	v := strings.TrimSpace(raw)
	if f.fieldType == FieldTypeTextarea {
		v = strings.TrimRight(raw, " \t\r\n")
	}

	switch f.fieldType {
	case FieldTypeNumber:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return "", "must be a number"
		}
	case FieldTypeBoolean:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return "", "must be true or false"
		}
		v = strconv.FormatBool(b)
	case FieldTypeEmail:
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return "", "must be a valid email address"
		}
	case FieldTypeURL:
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", "must be an absolute URL"
		}
	case FieldTypeSelect:
		if !slices.Contains(f.options, v) {
			return "", "must be one of: " + strings.Join(f.options, ", ")
		}
	case FieldTypeMultiSelect:
		chosen := make(map[string]bool)
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !slices.Contains(f.options, part) {
				return "", "must be one of: " + strings.Join(f.options, ", ")
			}
			chosen[part] = true
		}
		ordered := make([]string, 0, len(chosen))
		for _, opt := range f.options {
			if chosen[opt] {
				ordered = append(ordered, opt)
			}
		}
		v = strings.Join(ordered, ",")
	}

	if f.pattern != nil && !f.pattern.MatchString(v) {
		return "", "has an invalid format"
	}
	return v, ""
}
