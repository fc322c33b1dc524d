package grocery

// Category represents the section of the store an item belongs to
type Category string

const (
	// Store categories
	CategoryFruits     Category = "Fruits"
	CategoryVegetables Category = "Vegetables"
	CategoryDairy      Category = "Dairy"
	CategoryBakery     Category = "Bakery"
	CategoryDeli       Category = "Deli"
	CategorySeafood    Category = "Seafood"
	CategoryMeat       Category = "Meat"
	CategoryFrozen     Category = "Frozen"
	CategoryPantry     Category = "Pantry"
	CategoryBeverages  Category = "Beverages"
	CategoryHousehold  Category = "Household"
)

// perishableByDefault lists the categories whose items spoil quickly.
// Assigning one of these marks the item time-sensitive automatically.
var perishableByDefault = map[Category]bool{
	CategoryFruits:     true,
	CategoryVegetables: true,
	CategoryDairy:      true,
	CategoryBakery:     true,
	CategoryDeli:       true,
	CategorySeafood:    true,
}

// Perishable reports whether items in this category are flagged
// time-sensitive when the category is assigned.
func (c Category) Perishable() bool {
	return perishableByDefault[c]
}
