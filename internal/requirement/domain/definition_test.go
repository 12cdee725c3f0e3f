package requirement

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteForm(t *testing.T) *Form {
	t.Helper()
	return mustForm(t,
		mustField(t, "site.name", "Site name", FieldTypeText, Required()),
		mustField(t, "site.mail", "Site email", FieldTypeEmail, Required()),
	)
}

func TestBuilder_Build(t *testing.T) {
	env := newMemEnv()
	def, err := NewBuilder("site-info").
		Group("basics").
		Label("Site information").
		Description("Name and email").
		Severity(SeverityWarning).
		DependsOn("b", "a", "b").
		ActionLabel("Configure").
		Form(siteForm(t)).
		Environment(env).
		Recorder(env).
		Build()

	require.NoError(t, err)
	require.Equal(t, "site-info", def.ID())
	require.Equal(t, "basics", def.GroupID())
	require.Equal(t, "Site information", def.Label())
	require.Equal(t, "Name and email", def.Description())
	require.Equal(t, SeverityWarning, def.Severity())
	require.Equal(t, []string{"a", "b"}, def.Dependencies())
	label, ok := def.ActionLabel()
	require.True(t, ok)
	require.Equal(t, "Configure", label)
	require.NotNil(t, def.Form())
}

func TestBuilder_Defaults(t *testing.T) {
	def, err := NewBuilder("x").Label("X").Build()
	require.NoError(t, err)
	require.Equal(t, SeverityInfo, def.Severity())
	require.Empty(t, def.Dependencies())
	require.Empty(t, def.GroupID())

	_, ok := def.ActionLabel()
	require.False(t, ok)

	ctx := context.Background()
	require.True(t, def.IsApplicable(ctx))
	require.False(t, def.IsCompleted(ctx))
	require.False(t, def.IsResolvable(ctx))

	_, ok = ConfigurationStep(def)
	require.False(t, ok)
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		wantErr error
	}{
		{"empty id", NewBuilder("").Label("X"), ErrEmptyID},
		{"whitespace id", NewBuilder("a b").Label("X"), ErrInvalidID},
		{"empty label", NewBuilder("x"), ErrEmptyLabel},
		{"invalid severity", NewBuilder("x").Label("X").Severity("fatal"), ErrInvalidSeverity},
		{"self dependency", NewBuilder("x").Label("X").DependsOn("x"), ErrSelfDependency},
		{"form without recorder", NewBuilder("x").Label("X").Form(siteForm(t)), ErrNilRecorder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := tt.builder.Build()
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, def)
		})
	}
}

func TestDefinition_DefaultCompletion(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv()
	def, err := NewBuilder("site").Label("Site").Form(siteForm(t)).Environment(env).Recorder(env).Build()
	require.NoError(t, err)

	require.True(t, def.IsResolvable(ctx))
	require.False(t, def.IsCompleted(ctx))

	env.settings["site.name"] = "Example"
	require.False(t, def.IsCompleted(ctx), "one required field still missing")

	env.settings["site.mail"] = "   "
	require.False(t, def.IsCompleted(ctx), "blank values do not count")

	env.settings["site.mail"] = "ops@example.com"
	require.True(t, def.IsCompleted(ctx))
}

func TestDefinition_DefaultCompletion_NoRequiredFields(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv()
	form := mustForm(t,
		mustField(t, "a", "A", FieldTypeText),
		mustField(t, "b", "B", FieldTypeText),
	)
	def, err := NewBuilder("opt").Label("Optional").Form(form).Environment(env).Recorder(env).Build()
	require.NoError(t, err)

	require.False(t, def.IsCompleted(ctx))
	env.settings["b"] = "set"
	require.True(t, def.IsCompleted(ctx))
}

func TestDefinition_PredicateErrorsAreFalse(t *testing.T) {
	ctx := context.Background()
	failing := PredicateFunc(func(context.Context, Environment) (bool, error) {
		return true, errors.New("backend down")
	})
	panicking := PredicateFunc(func(context.Context, Environment) (bool, error) {
		panic("boom")
	})

	type failure struct{ id, check string }
	var got []failure
	def, err := NewBuilder("x").
		Label("X").
		Applicable(failing).
		Completed(panicking).
		Resolvable(failing).
		OnError(func(id, check string, err error) {
			require.Error(t, err)
			got = append(got, failure{id, check})
		}).
		Build()
	require.NoError(t, err)

	require.False(t, def.IsApplicable(ctx))
	require.False(t, def.IsCompleted(ctx))
	require.False(t, def.IsResolvable(ctx))
	require.Equal(t, []failure{
		{"x", CheckApplicable},
		{"x", CheckCompleted},
		{"x", CheckResolvable},
	}, got)
}

func TestDefinition_DefaultCompletion_EnvironmentError(t *testing.T) {
	env := newMemEnv()
	env.readErr = errors.New("unavailable")
	var reported error
	def, err := NewBuilder("site").Label("Site").Form(siteForm(t)).
		Environment(env).Recorder(env).
		OnError(func(_, _ string, err error) { reported = err }).
		Build()
	require.NoError(t, err)

	require.False(t, def.IsCompleted(context.Background()))
	require.ErrorContains(t, reported, "unavailable")
}

func TestDefinition_Configure_NoStep(t *testing.T) {
	def := fixed(t, "x", true, false)
	_, err := def.Configure(context.Background(), Values{"a": "b"})
	require.ErrorIs(t, err, ErrNoConfigurationStep)
}

func TestDefinition_Configure_RejectionIsNonMutating(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv()
	def, err := NewBuilder("site").Label("Site").Form(siteForm(t)).Environment(env).Recorder(env).Build()
	require.NoError(t, err)

	before := def.IsCompleted(ctx)
	_, err = def.Configure(ctx, Values{"site.name": "Example", "site.mail": "not-an-email"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, "site", verr.RequirementID)
	require.Equal(t, []FieldError{{Field: "site.mail", Message: "must be a valid email address"}}, verr.Fields)
	require.Equal(t, before, def.IsCompleted(ctx))
	require.Zero(t, env.commits)
	require.Empty(t, env.settings)
}

func TestDefinition_Configure_ReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv()
	def, err := NewBuilder("site").Label("Site").Form(siteForm(t)).Environment(env).Recorder(env).Build()
	require.NoError(t, err)

	res, err := def.Configure(ctx, Values{"site.name": " Example ", "site.mail": "ops@example.com"})
	require.NoError(t, err)
	require.True(t, res.Completed)
	require.Equal(t, "site", res.RequirementID)
	require.Equal(t, Values{"site.name": "Example", "site.mail": "ops@example.com"}, res.Values)
	require.True(t, def.IsCompleted(ctx))
	require.Equal(t, 1, env.commits)
}

func TestDefinition_Configure_CommitError(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv()
	env.commitErr = errors.New("disk full")
	def, err := NewBuilder("site").Label("Site").Form(siteForm(t)).Environment(env).Recorder(env).Build()
	require.NoError(t, err)

	_, err = def.Configure(ctx, Values{"site.name": "Example", "site.mail": "ops@example.com"})
	require.ErrorContains(t, err, "disk full")
	require.NotErrorIs(t, err, ErrValidation)
	require.False(t, def.IsCompleted(ctx))
}

func TestDefinition_Configure_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv()
	def, err := NewBuilder("site").Label("Site").Form(siteForm(t)).Environment(env).Recorder(env).Build()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			def.IsCompleted(ctx)
		}()
		go func() {
			defer wg.Done()
			_, err := def.Configure(ctx, Values{"site.name": "Example", "site.mail": "ops@example.com"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.True(t, def.IsCompleted(ctx))
	require.Equal(t, 8, env.commits)
}

func TestConfigurationStep(t *testing.T) {
	env := newMemEnv()
	def, err := NewBuilder("site").Label("Site").Form(siteForm(t)).Recorder(env).Build()
	require.NoError(t, err)

	step, ok := ConfigurationStep(def)
	require.True(t, ok)
	require.Equal(t, []string{"site.name", "site.mail"}, step.Form().Keys())
}
