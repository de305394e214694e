package entities

// RolePermission holds the precomputed capability sets for one role. The
// event sets are keyed by event-type id so every policy check is a map
// membership test.
type RolePermission struct {
	Role             Role
	CanCreateEvents  map[string]bool
	CanEditEvents    map[string]bool
	CanViewEvents    map[string]bool
	CanDeleteEvents  map[string]bool
	CanApproveEvents map[string]bool

	CanManageUsers  bool
	CanViewReports  bool
	CanExportData   bool
	CanManageSystem bool
}
