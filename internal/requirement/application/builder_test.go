package requirement

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
	"github.com/zjrosen/requisite/internal/state"
)

func TestManifestBuild(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore()

	reg, err := mustParse(t, basicManifest).Build(store, store)
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())

	url, err := reg.Get("url")
	require.NoError(t, err)
	assert.Equal(t, "basics", url.GroupID())
	assert.Equal(t, []string{"name"}, url.Dependencies())
	assert.Equal(t, requirement.SeverityInfo, url.Severity())

	g, ok := reg.GroupOf(url)
	require.True(t, ok)
	assert.Equal(t, "Basics", g.Label())

	// search is not applicable until the capability is enabled
	applicable, err := reg.AllApplicable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "url"}, ids(applicable))

	require.NoError(t, store.SetCapability(ctx, "search", true))
	applicable, err = reg.AllApplicable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "search", "url"}, ids(applicable))
}

func TestBuildRegistry_FormFields(t *testing.T) {
	m := mustParse(t, `
version: "1.0"
requirements:
  - id: smtp
    label: SMTP
    severity: warning
    action_label: Configure SMTP
    form:
      - key: smtp.host
        label: Host
        description: Server name
        required: true
        pattern: '[a-z.]+'
      - key: smtp.port
        label: Port
        type: number
        default: "587"
        rule: 'int(value) < 65536'
        message: too large
      - key: smtp.mode
        label: Mode
        type: multi-select
        options: [tls, auth]
`)
	store := state.NewMemoryStore()
	reg, err := m.Build(store, store)
	require.NoError(t, err)

	req, err := reg.Get("smtp")
	require.NoError(t, err)
	assert.Equal(t, requirement.SeverityWarning, req.Severity())
	label, ok := req.ActionLabel()
	assert.True(t, ok)
	assert.Equal(t, "Configure SMTP", label)

	step, ok := requirement.ConfigurationStep(req)
	require.True(t, ok)
	form := step.Form()
	assert.Equal(t, []string{"smtp.host", "smtp.port", "smtp.mode"}, form.Keys())

	host, _ := form.Field("smtp.host")
	assert.Equal(t, requirement.FieldTypeText, host.Type(), "type defaults to text")
	assert.Equal(t, "Server name", host.Description())
	assert.True(t, host.IsRequired())

	port, _ := form.Field("smtp.port")
	assert.Equal(t, "587", port.DefaultValue())

	_, err = step.Configure(context.Background(), requirement.Values{"smtp.host": "mail.example", "smtp.port": "70000"})
	var verr *requirement.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string][]string{"smtp.port": {"too large"}}, verr.Messages())

	res, err := step.Configure(context.Background(), requirement.Values{"smtp.host": "mail.example", "smtp.mode": "auth, tls"})
	require.NoError(t, err)
	assert.Equal(t, requirement.Values{"smtp.host": "mail.example", "smtp.port": "587", "smtp.mode": "tls,auth"}, res.Values)
	assert.True(t, res.Completed)
}

func TestBuildRegistry_GroupsAcrossManifests(t *testing.T) {
	groups := mustParse(t, `
version: "1.0"
groups:
  - id: mail
    label: Mail
    weight: 5
`)
	reqs := mustParse(t, `
version: "1.0"
requirements:
  - id: admin-email
    group: mail
    label: Admin email
`)
	store := state.NewMemoryStore()
	reg, err := BuildRegistry([]*Manifest{reqs, groups}, store, store)
	require.NoError(t, err)

	g, ok := reg.Group("mail")
	require.True(t, ok)
	assert.Equal(t, 5, g.Weight())
}

func TestBuildRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		errMsg  string
	}{
		{
			name: "duplicate requirement",
			content: `
version: "1.0"
requirements:
  - {id: a, label: A}
  - {id: a, label: Again}
`,
			wantErr: requirement.ErrDuplicateID,
		},
		{
			name: "duplicate group",
			content: `
version: "1.0"
groups:
  - {id: g, label: G}
  - {id: g, label: G2}
`,
			wantErr: requirement.ErrDuplicateID,
		},
		{
			name: "unknown group",
			content: `
version: "1.0"
requirements:
  - {id: a, label: A, group: nowhere}
`,
			wantErr: requirement.ErrUnknownGroup,
		},
		{
			name: "unknown dependency",
			content: `
version: "1.0"
requirements:
  - {id: a, label: A, depends_on: [ghost]}
`,
			wantErr: requirement.ErrUnknownDependency,
		},
		{
			name: "cycle",
			content: `
version: "1.0"
requirements:
  - {id: a, label: A, depends_on: [b]}
  - {id: b, label: B, depends_on: [a]}
`,
			wantErr: requirement.ErrCyclicDependency,
		},
		{
			name: "self dependency",
			content: `
version: "1.0"
requirements:
  - {id: a, label: A, depends_on: [a]}
`,
			wantErr: requirement.ErrSelfDependency,
		},
		{
			name: "bad predicate",
			content: `
version: "1.0"
requirements:
  - {id: a, label: A, completed: 'settings.size'}
`,
			wantErr: ErrExpression,
			errMsg:  "requirement a",
		},
		{
			name: "bad rule",
			content: `
version: "1.0"
requirements:
  - id: a
    label: A
    form:
      - {key: x, label: X, rule: 'value + 1'}
`,
			wantErr: ErrExpression,
			errMsg:  "field x",
		},
		{
			name: "select without options",
			content: `
version: "1.0"
requirements:
  - id: a
    label: A
    form:
      - {key: x, label: X, type: select}
`,
			wantErr: requirement.ErrFieldEmptyOptions,
		},
		{
			name: "invalid default",
			content: `
version: "1.0"
requirements:
  - id: a
    label: A
    form:
      - {key: x, label: X, type: number, default: "many"}
`,
			wantErr: requirement.ErrFieldInvalidDefault,
		},
		{
			name: "duplicate field",
			content: `
version: "1.0"
requirements:
  - id: a
    label: A
    form:
      - {key: x, label: X}
      - {key: x, label: X again}
`,
			wantErr: requirement.ErrDuplicateField,
		},
		{
			name: "invalid pattern",
			content: `
version: "1.0"
requirements:
  - id: a
    label: A
    form:
      - {key: x, label: X, pattern: '('}
`,
			wantErr: requirement.ErrFieldInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest("bad.yaml", []byte(tt.content))
			require.NoError(t, err)

			store := state.NewMemoryStore()
			_, err = m.Build(store, store)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.errMsg != "" {
				require.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestBuildRegistry_ErrorHandlerReceivesPredicateFailures(t *testing.T) {
	m := mustParse(t, `
version: "1.0"
requirements:
  - id: a
    label: A
    applicable: 'settings["missing"] == "x"'
`)

	var mu sync.Mutex
	var got []string
	handler := func(id, check string, err error) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, id+"/"+check)
	}

	store := state.NewMemoryStore()
	reg, err := m.Build(store, store, WithErrorHandler(handler))
	require.NoError(t, err)

	applicable, err := reg.AllApplicable(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applicable, "evaluation errors make the predicate false")
	assert.Contains(t, got, "a/"+requirement.CheckApplicable)
}

func TestBuildRegistry_FromLoadedManifests(t *testing.T) {
	ms, err := LoadManifests(mapFS(map[string]string{"basic.yaml": basicManifest}), "checklists", "builtin:")
	require.NoError(t, err)

	store := state.NewMemoryStore()
	_, err = BuildRegistry(ms, store, store)
	require.NoError(t, err)

	// Building twice into the same process must not conflict.
	_, err = BuildRegistry(ms, store, store)
	require.NoError(t, err)
}

func ids(reqs []requirement.Requirement) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.ID()
	}
	return out
}
