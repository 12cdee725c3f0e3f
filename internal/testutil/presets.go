package testutil

// WithStandardChecklist adds a checklist that covers every requirement state.
//
// Structure:
//
//	basics (weight 0)
//	  ├── name      actionable, form site.name
//	  └── url       waiting on name, form site.url
//	ops (weight 10)
//	  ├── backups   completed
//	  ├── cron      blocked
//	  └── search    not applicable until the search capability is enabled
func (b *Builder) WithStandardChecklist() *Builder {
	return b.
		WithGroup("basics", GroupLabel("Basics"), GroupDescription("Site identity."), Weight(0)).
		WithGroup("ops", GroupLabel("Operations"), Weight(10)).
		WithRequirement("name",
			Label("Name the site"), InGroup("basics"), ActionLabel("Set name"),
			Description("Shown in page titles."),
			Fields(Text("site.name", true))).
		WithRequirement("url",
			Label("Set the URL"), InGroup("basics"), DependsOn("name"),
			Fields(FieldData{Key: "site.url", Label: "URL", Type: "url", Required: true})).
		WithRequirement("backups",
			Label("Configure backups"), InGroup("ops"), Completed(true)).
		WithRequirement("cron",
			Label("Run scheduled tasks"), InGroup("ops"), Resolvable(false)).
		WithRequirement("search",
			Label("Configure search"), InGroup("ops"), WhenCapability("search"),
			CompletedWhenSet("search.backend"),
			Fields(Select("search.backend", "database", "solr")))
}
