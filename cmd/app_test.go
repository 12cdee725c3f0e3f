package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/requisite/internal/config"
	"github.com/zjrosen/requisite/internal/presentation"
	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
)

const testManifest = `
version: "1.0"
groups:
  - id: basics
    label: Basics
requirements:
  - id: name
    group: basics
    label: Name the site
    form:
      - key: site.name
        label: Name
        required: true
  - id: url
    group: basics
    label: Set the URL
    depends_on: [name]
    form:
      - key: site.url
        label: URL
        type: url
        required: true
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checklist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// useConfig replaces the global config for one test.
func useConfig(t *testing.T, manifestPath, format string) {
	t.Helper()
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	c := config.Defaults()
	c.Manifests = config.ManifestsConfig{Paths: []string{manifestPath}}
	c.State = config.StateConfig{Driver: "memory"}
	c.Output.Format = format
	c.Output.Width = 80
	c.Flags = nil
	cfg = c
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	a, err := newApp(context.Background())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.Flags().Bool("dry-run", false, "")
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetContext(context.Background())
	return c, &out
}

func TestParseAssignments(t *testing.T) {
	values, err := parseAssignments([]string{"a=1", "b=x=y", " c =", "a=2"})
	require.NoError(t, err)
	require.Equal(t, requirement.Values{"a": "2", "b": "x=y", "c": ""}, values)

	_, err = parseAssignments([]string{"novalue"})
	require.ErrorContains(t, err, "want key=value")

	_, err = parseAssignments([]string{"=v"})
	require.Error(t, err)
}

func TestOutputWidth(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg.Output.Width = 120
	require.Equal(t, 120, outputWidth())

	cfg.Output.Width = 0
	t.Setenv("COLUMNS", "100")
	require.Equal(t, 100, outputWidth())

	t.Setenv("COLUMNS", "nope")
	require.Equal(t, presentation.DefaultWidth, outputWidth())
}

func TestList_JSON(t *testing.T) {
	useConfig(t, writeManifest(t, testManifest), "json")
	a := newTestApp(t)

	c, out := testCommand()
	require.NoError(t, runList(c, nil, a))

	var rep presentation.ReportDTO
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	require.False(t, rep.FullyResolved)
	require.Equal(t, "name", rep.Next)
	require.Len(t, rep.Requirements, 2)
	require.Equal(t, "actionable", rep.Requirements[0].State)
	require.Equal(t, "waiting", rep.Requirements[1].State)
}

func TestConfigure_DryRunThenCommit(t *testing.T) {
	useConfig(t, writeManifest(t, testManifest), "text")
	a := newTestApp(t)
	ctx := context.Background()

	c, out := testCommand()
	require.NoError(t, c.Flags().Set("dry-run", "true"))
	require.NoError(t, runConfigure(c, []string{"name", "site.name=Demo"}, a))
	require.Contains(t, out.String(), "Dry run")

	_, ok, err := a.store.Setting(ctx, "site.name")
	require.NoError(t, err)
	require.False(t, ok, "dry run must not store values")

	c, out = testCommand()
	require.NoError(t, runConfigure(c, []string{"name", "site.name=Demo"}, a))
	require.Contains(t, out.String(), "Stored 1 value(s) for name.")

	v, ok, err := a.store.Setting(ctx, "site.name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Demo", v)
}

func TestConfigure_Rejected(t *testing.T) {
	useConfig(t, writeManifest(t, testManifest), "text")
	a := newTestApp(t)

	c, out := testCommand()
	err := runConfigure(c, []string{"url", "site.url=relative/path"}, a)
	require.ErrorIs(t, err, requirement.ErrValidation)
	require.Contains(t, out.String(), "site.url: must be an absolute URL")

	settings, err := a.store.Settings(context.Background())
	require.NoError(t, err)
	require.Empty(t, settings)
}

func TestStatus_ExitsUnresolved(t *testing.T) {
	useConfig(t, writeManifest(t, testManifest), "text")
	a := newTestApp(t)

	c, out := testCommand()
	err := runStatus(c, nil, a)
	require.ErrorIs(t, err, errUnresolved)
	require.Contains(t, out.String(), "0/2 completed")
	require.Contains(t, out.String(), "Next: name")

	ctx := context.Background()
	require.NoError(t, a.store.Commit(ctx, "name", map[string]string{"site.name": "Demo"}))
	require.NoError(t, a.store.Commit(ctx, "url", map[string]string{"site.url": "https://example.com"}))

	c, out = testCommand()
	require.NoError(t, runStatus(c, nil, a))
	require.Contains(t, out.String(), "2/2 completed")
}

func TestShow_NotApplicable(t *testing.T) {
	manifest := testManifest + `
  - id: search
    label: Configure search
    applicable: '"search" in capabilities'
`
	useConfig(t, writeManifest(t, manifest), "json")
	a := newTestApp(t)

	c, out := testCommand()
	require.NoError(t, showRequirement(context.Background(), c, a, "search"))

	var got struct {
		Requirement presentation.RequirementDTO `json:"requirement"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, presentation.StateNotApplicable, got.Requirement.State)

	c, _ = testCommand()
	err := showRequirement(context.Background(), c, a, "missing")
	require.ErrorIs(t, err, requirement.ErrNotFound)
}

func TestValidate(t *testing.T) {
	c, out := testCommand()
	require.NoError(t, runValidate(c, []string{writeManifest(t, testManifest)}))
	require.Contains(t, out.String(), "2 requirement(s) in 1 group(s)")

	cyclic := `
version: "1.0"
requirements:
  - id: a
    label: A
    depends_on: [b]
  - id: b
    label: B
    depends_on: [a]
`
	c, _ = testCommand()
	err := runValidate(c, []string{writeManifest(t, cyclic)})
	require.ErrorIs(t, err, requirement.ErrCyclicDependency)
}
