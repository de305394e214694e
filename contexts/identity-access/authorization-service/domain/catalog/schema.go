package catalog

// YAML document schema for the embedded event catalog. The document is the
// single source of truth for event types; role capability sets are derived
// from it at load time so the two representations cannot drift.

type document struct {
	Version    int                  `yaml:"version"`
	EventTypes []eventTypeDoc       `yaml:"event_types"`
	Roles      []rolePermissionsDoc `yaml:"roles"`
}

type eventTypeDoc struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Category           string   `yaml:"category"`
	RequiredRole       string   `yaml:"required_role"`
	CanEdit            []string `yaml:"can_edit"`
	CanView            []string `yaml:"can_view"`
	RequiresApproval   bool     `yaml:"requires_approval"`
	AttachmentsAllowed bool     `yaml:"attachments_allowed"`
}

type rolePermissionsDoc struct {
	Role            string   `yaml:"role"`
	CanDeleteEvents []string `yaml:"can_delete_events"`
	CanManageUsers  bool     `yaml:"can_manage_users"`
	CanViewReports  bool     `yaml:"can_view_reports"`
	CanExportData   bool     `yaml:"can_export_data"`
	CanManageSystem bool     `yaml:"can_manage_system"`
}
