package requirement

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	m := mustParse(t, basicManifest)

	require.Equal(t, "test.yaml", m.Source)
	require.Equal(t, "1.0", m.File.Version)
	require.Len(t, m.File.Groups, 1)
	require.Len(t, m.File.Requirements, 3)
	require.Equal(t, []string{"name"}, m.File.Requirements[1].DependsOn)
	require.Equal(t, "url", m.File.Requirements[1].Form[0].Type)
	require.Equal(t, []string{"database", "solr"}, m.File.Requirements[2].Form[0].Options)
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		errMsg  string
	}{
		{
			name:    "missing version",
			content: "requirements: []\n",
			wantErr: ErrSchema,
		},
		{
			name:    "unknown top-level key",
			content: "version: \"1.0\"\nplugins: []\n",
			wantErr: ErrSchema,
		},
		{
			name: "unknown requirement key",
			content: `
version: "1.0"
requirements:
  - id: a
    label: A
    weight: 3
`,
			wantErr: ErrSchema,
		},
		{
			name: "requirement without label",
			content: `
version: "1.0"
requirements:
  - id: a
`,
			wantErr: ErrSchema,
		},
		{
			name: "id with whitespace",
			content: `
version: "1.0"
requirements:
  - id: "a b"
    label: A
`,
			wantErr: ErrSchema,
		},
		{
			name: "bad severity",
			content: `
version: "1.0"
requirements:
  - id: a
    label: A
    severity: fatal
`,
			wantErr: ErrSchema,
		},
		{
			name: "bad field type",
			content: `
version: "1.0"
requirements:
  - id: a
    label: A
    form:
      - key: x
        label: X
        type: color
`,
			wantErr: ErrSchema,
		},
		{
			name:    "major version 2",
			content: "version: \"2.0\"\n",
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "major version 0",
			content: "version: \"0.9\"\n",
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "not semver",
			content: "version: \"latest\"\n",
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "not yaml",
			content: "version: [",
			errMsg:  "parse yaml",
		},
		{
			name:    "empty file",
			content: "",
			wantErr: ErrSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest("bad.yaml", []byte(tt.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), "bad.yaml")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errMsg != "" {
				require.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestParseManifest_MinorVersionsAccepted(t *testing.T) {
	for _, v := range []string{"1", "1.0", "1.4.2"} {
		_, err := ParseManifest("m.yaml", []byte("version: \""+v+"\"\n"))
		require.NoError(t, err, v)
	}
}

func TestParseManifest_NumericDefault(t *testing.T) {
	m := mustParse(t, `
version: "1.0"
requirements:
  - id: smtp
    label: SMTP
    form:
      - key: smtp.port
        label: Port
        type: number
        default: 587
`)
	require.Equal(t, "587", m.File.Requirements[0].Form[0].Default)
}

func TestManifestSchema_IsJSON(t *testing.T) {
	schema := ManifestSchema()
	require.NotEmpty(t, schema)
	require.Contains(t, string(schema), `"$id"`)

	// The returned slice is a copy
	schema[0] = 'x'
	require.Equal(t, byte('{'), ManifestSchema()[0])
}
