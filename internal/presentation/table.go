package presentation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/zjrosen/requisite/internal/state"
)

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(header)
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t
}

func reportTable(rep ReportDTO) string {
	t := newTable(table.Row{"ID", "State", "Severity", "Group", "Label", "Waiting On"})
	for _, r := range rep.Requirements {
		t.AppendRow(table.Row{r.ID, r.State, r.Severity, r.Group, r.Label, strings.Join(r.WaitingOn, ", ")})
	}
	t.AppendFooter(table.Row{"", strconv.Itoa(rep.Summary.Completed) + "/" + strconv.Itoa(rep.Summary.Total), "", "", "completed"})
	return t.Render() + "\n"
}

func requirementTable(req RequirementDTO, form *FormDTO) string {
	t := newTable(table.Row{"Property", "Value"})
	t.AppendRows([]table.Row{
		{"id", req.ID},
		{"label", req.Label},
		{"severity", req.Severity},
		{"group", req.Group},
		{"state", req.State},
		{"depends_on", strings.Join(req.DependsOn, ", ")},
	})
	out := t.Render() + "\n"
	if form == nil {
		return out
	}

	ft := newTable(table.Row{"Key", "Type", "Required", "Default", "Current"})
	for _, fd := range form.Fields {
		ft.AppendRow(table.Row{fd.Key, fd.Type, fd.Required, fd.Default, fd.Current})
	}
	return out + "\n" + ft.Render() + "\n"
}

func groupsTable(groups []GroupDTO) string {
	t := newTable(table.Row{"ID", "Label", "Weight", "Requirements"})
	for _, g := range groups {
		t.AppendRow(table.Row{g.ID, g.Label, g.Weight, len(g.Requirements)})
	}
	return t.Render() + "\n"
}

func historyTable(subs []state.Submission) string {
	t := newTable(table.Row{"Submitted", "Requirement", "Values"})
	for _, s := range subs {
		pairs := make([]string, 0, len(s.Values))
		for _, k := range sortedKeys(s.Values) {
			pairs = append(pairs, k+"="+s.Values[k])
		}
		t.AppendRow(table.Row{s.SubmittedAt.Format("2006-01-02 15:04:05"), s.RequirementID, strings.Join(pairs, " ")})
	}
	return t.Render() + "\n"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
