package requirement

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldType_IsValid(t *testing.T) {
	for _, ft := range []FieldType{
		FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeBoolean,
		FieldTypeEmail, FieldTypeURL, FieldTypeSelect, FieldTypeMultiSelect,
	} {
		require.True(t, ft.IsValid(), ft)
	}
	require.False(t, FieldType("date").IsValid())
	require.False(t, FieldType("").IsValid())
}

func TestFieldType_RequiresOptions(t *testing.T) {
	require.True(t, FieldTypeSelect.RequiresOptions())
	require.True(t, FieldTypeMultiSelect.RequiresOptions())
	require.False(t, FieldTypeText.RequiresOptions())
}

func TestNewField(t *testing.T) {
	f, err := NewField("site.name", "Site name", FieldTypeText,
		WithDescription("Shown in the header"),
		Required(),
		WithDefault("My site"),
	)
	require.NoError(t, err)
	require.Equal(t, "site.name", f.Key())
	require.Equal(t, "Site name", f.Label())
	require.Equal(t, "Shown in the header", f.Description())
	require.Equal(t, FieldTypeText, f.Type())
	require.True(t, f.IsRequired())
	require.Equal(t, "My site", f.DefaultValue())
	require.Empty(t, f.Options())
	require.Empty(t, f.Pattern())
}

func TestNewField_Validation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		label   string
		ft      FieldType
		opts    []FieldOption
		wantErr error
	}{
		{"empty key", "", "Label", FieldTypeText, nil, ErrFieldEmptyKey},
		{"empty label", "k", "", FieldTypeText, nil, ErrFieldEmptyLabel},
		{"invalid type", "k", "Label", "date", nil, ErrFieldInvalidType},
		{"select without options", "k", "Label", FieldTypeSelect, nil, ErrFieldEmptyOptions},
		{"multi-select without options", "k", "Label", FieldTypeMultiSelect, nil, ErrFieldEmptyOptions},
		{"bad pattern", "k", "Label", FieldTypeText, []FieldOption{WithPattern("(")}, ErrFieldInvalidPattern},
		{"bad default", "k", "Label", FieldTypeSelect, []FieldOption{WithOptions("a", "b"), WithDefault("c")}, ErrFieldInvalidDefault},
		{"non-numeric default", "k", "Label", FieldTypeNumber, []FieldOption{WithDefault("lots")}, ErrFieldInvalidDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewField(tt.key, tt.label, tt.ft, tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, f)
		})
	}
}

func TestField_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		field   *Field
		in      string
		want    string
		wantMsg string
	}{
		{"text trims", mustField(t, "k", "K", FieldTypeText), "  hello ", "hello", ""},
		{"textarea keeps leading indent", mustField(t, "k", "K", FieldTypeTextarea), "  line one\nline two\n", "  line one\nline two", ""},
		{"number", mustField(t, "k", "K", FieldTypeNumber), "3.5", "3.5", ""},
		{"number invalid", mustField(t, "k", "K", FieldTypeNumber), "abc", "", "must be a number"},
		{"boolean canonical", mustField(t, "k", "K", FieldTypeBoolean), "TRUE", "true", ""},
		{"boolean numeric", mustField(t, "k", "K", FieldTypeBoolean), "0", "false", ""},
		{"boolean invalid", mustField(t, "k", "K", FieldTypeBoolean), "yes", "", "must be true or false"},
		{"email", mustField(t, "k", "K", FieldTypeEmail), "ops@example.com", "ops@example.com", ""},
		{"email with display name", mustField(t, "k", "K", FieldTypeEmail), "Ops <ops@example.com>", "", "must be a valid email address"},
		{"email invalid", mustField(t, "k", "K", FieldTypeEmail), "nope", "", "must be a valid email address"},
		{"url", mustField(t, "k", "K", FieldTypeURL), "https://example.com/path", "https://example.com/path", ""},
		{"url relative", mustField(t, "k", "K", FieldTypeURL), "/path", "", "must be an absolute URL"},
		{"select", mustField(t, "k", "K", FieldTypeSelect, WithOptions("a", "b")), "b", "b", ""},
		{"select invalid", mustField(t, "k", "K", FieldTypeSelect, WithOptions("a", "b")), "c", "", "must be one of: a, b"},
		{"multi-select orders by options", mustField(t, "k", "K", FieldTypeMultiSelect, WithOptions("a", "b", "c")), "c, a,a", "a,c", ""},
		{"multi-select invalid", mustField(t, "k", "K", FieldTypeMultiSelect, WithOptions("a", "b")), "a,d", "", "must be one of: a, b"},
		{"pattern", mustField(t, "k", "K", FieldTypeText, WithPattern("[a-z]+")), "abc", "abc", ""},
		{"pattern is anchored", mustField(t, "k", "K", FieldTypeText, WithPattern("[a-z]+")), "abc1", "", "has an invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := tt.field.normalize(tt.in)
			require.Equal(t, tt.wantMsg, msg)
			require.Equal(t, tt.want, got)
		})
	}
}
