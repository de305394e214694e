package entities

// ProductCategory is the closed set of product categories records are filed
// under. Category statistics are zero-initialized over this set.
type ProductCategory string

const (
	CategoryFruit     ProductCategory = "Fruit"
	CategoryVegetable ProductCategory = "Vegetable"
	CategoryGrain     ProductCategory = "Grain"
	CategoryHerb      ProductCategory = "Herb"
	CategoryDairy     ProductCategory = "Dairy"
)

// ProductCategories returns the closed category set in stable order.
func ProductCategories() []ProductCategory {
	return []ProductCategory{
		CategoryFruit,
		CategoryVegetable,
		CategoryGrain,
		CategoryHerb,
		CategoryDairy,
	}
}

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryFruit, CategoryVegetable, CategoryGrain, CategoryHerb, CategoryDairy:
		return true
	default:
		return false
	}
}
