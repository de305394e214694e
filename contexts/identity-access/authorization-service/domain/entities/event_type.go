package entities

// Category is the closed set of supply-chain event categories.
type Category string

const (
	CategoryPlanting  Category = "planting"
	CategoryGrowth    Category = "growth"
	CategoryHarvest   Category = "harvest"
	CategoryQuality   Category = "quality"
	CategoryLogistics Category = "logistics"
	CategoryPackaging Category = "packaging"
)

// Categories returns the closed category set in stable order.
func Categories() []Category {
	return []Category{
		CategoryPlanting,
		CategoryGrowth,
		CategoryHarvest,
		CategoryQuality,
		CategoryLogistics,
		CategoryPackaging,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPlanting, CategoryGrowth, CategoryHarvest,
		CategoryQuality, CategoryLogistics, CategoryPackaging:
		return true
	default:
		return false
	}
}

// EventTypeDefinition describes one domain event type and its authorization
// rule. Definitions are immutable once the catalog is loaded.
type EventTypeDefinition struct {
	ID                 string
	Name               string
	Category           Category
	RequiredRole       Role
	CanEdit            []Role
	CanView            []Role
	RequiresApproval   bool
	AttachmentsAllowed bool
}
