package presentation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	requirement "github.com/zjrosen/requisite/internal/requirement/domain"
	"github.com/zjrosen/requisite/internal/testutil"
)

func standardReport(t *testing.T) (ReportDTO, *requirement.Registry) {
	t.Helper()
	reg, _ := testutil.NewBuilder(t).WithStandardChecklist().Build()
	rep, err := reg.Evaluate(context.Background())
	require.NoError(t, err)
	return FromDomainReport(rep, reg), reg
}

func TestFromDomainReport(t *testing.T) {
	dto, _ := standardReport(t)

	require.False(t, dto.FullyResolved)
	require.Equal(t, "cron", dto.Next)
	require.Equal(t, []string{"search"}, dto.NotApplicable)
	require.Len(t, dto.Requirements, 4)

	byID := make(map[string]RequirementDTO)
	for _, r := range dto.Requirements {
		byID[r.ID] = r
	}
	require.Equal(t, "completed", byID["backups"].State)
	require.Equal(t, "blocked", byID["cron"].State)
	require.Equal(t, "actionable", byID["name"].State)
	require.Equal(t, "waiting", byID["url"].State)
	require.Equal(t, []string{"name"}, byID["url"].WaitingOn)
	require.Equal(t, "Basics", byID["name"].GroupLabel)
	require.Equal(t, "Set name", byID["name"].ActionLabel)
	require.True(t, byID["name"].Configurable)
	require.False(t, byID["cron"].Configurable)
	require.NotNil(t, byID["cron"].DependsOn, "depends_on is always present")
}

func TestFromDomainGroups(t *testing.T) {
	_, reg := standardReport(t)

	groups := FromDomainGroups(reg.Groups(), reg.List())
	require.Len(t, groups, 2)
	require.Equal(t, "basics", groups[0].ID)
	require.Equal(t, []string{"name", "url"}, groups[0].Requirements)
	require.Equal(t, []string{"backups", "cron", "search"}, groups[1].Requirements)
}

func TestFromDomainForm(t *testing.T) {
	_, reg := standardReport(t)
	r, err := reg.Get("search")
	require.NoError(t, err)
	step, ok := requirement.ConfigurationStep(r)
	require.True(t, ok)

	dto := FromDomainForm(r, step.Form(), map[string]string{"search.backend": "solr"})
	require.Equal(t, "search", dto.RequirementID)
	require.Len(t, dto.Fields, 1)
	require.Equal(t, FieldDTO{
		Key:     "search.backend",
		Label:   "search.backend",
		Type:    "select",
		Options: []string{"database", "solr"},
		Current: "solr",
	}, dto.Fields[0])
}

func TestFromPreview(t *testing.T) {
	dto := FromPreview("smtp",
		requirement.Values{"smtp.host": "old.example.org", "smtp.port": "587"},
		requirement.Values{"smtp.host": "new.example.org", "smtp.tls": "true"},
		nil)

	require.True(t, dto.Valid)
	require.Equal(t, []ChangeDTO{
		{Key: "smtp.host", Current: "old.example.org", Proposed: "new.example.org", Changed: true},
		{Key: "smtp.port", Current: "587", Proposed: "587", Changed: false},
		{Key: "smtp.tls", Current: "", Proposed: "true", Changed: true},
	}, dto.Changes)

	invalid := FromPreview("smtp", nil, nil, []requirement.FieldError{{Field: "smtp.host", Message: "is required"}})
	require.False(t, invalid.Valid)
	require.Empty(t, invalid.Changes)
}
