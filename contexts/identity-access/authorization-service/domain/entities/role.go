package entities

// Role is a closed actor classification. Retailer and government participate
// as view-only roles in downstream flows.
type Role string

const (
	RoleFarmer     Role = "farmer"
	RoleInspector  Role = "inspector"
	RoleLogistics  Role = "logistics"
	RolePackaging  Role = "packaging"
	RoleViewer     Role = "viewer"
	RoleAdmin      Role = "admin"
	RoleRetailer   Role = "retailer"
	RoleGovernment Role = "government"
)

// Roles returns the closed role set in stable order.
func Roles() []Role {
	return []Role{
		RoleFarmer,
		RoleInspector,
		RoleLogistics,
		RolePackaging,
		RoleViewer,
		RoleAdmin,
		RoleRetailer,
		RoleGovernment,
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleInspector, RoleLogistics, RolePackaging,
		RoleViewer, RoleAdmin, RoleRetailer, RoleGovernment:
		return true
	default:
		return false
	}
}
