package model

// Category is a spending category suggested for a merchant. Raw values are
// the Norwegian labels used in stored records and the store dictionary.
type Category string

const (
	CategoryGroceries    Category = "Mat"
	CategoryClothes      Category = "Klær"
	CategoryElectronics  Category = "Elektronikk"
	CategorySports       Category = "Sport"
	CategoryConstruction Category = "Byggevarer"
	CategoryOther        Category = "Annet"
)

// Categories lists every current category.
func Categories() []Category {
	return []Category{
		CategoryGroceries,
		CategoryClothes,
		CategoryElectronics,
		CategorySports,
		CategoryConstruction,
		CategoryOther,
	}
}

// ParseCategory resolves a label from the current set.
func ParseCategory(label string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == label {
			return c, true
		}
	}
	return CategoryOther, false
}

// legacyTransport was its own category before fuel and travel purchases
// were folded into Annet.
const legacyTransport = "Transport"

// MigrateCategory maps a stored label, current or legacy, onto the current
// category set. Unknown labels become CategoryOther.
func MigrateCategory(label string) Category {
	if c, ok := ParseCategory(label); ok {
		return c
	}
	if label == legacyTransport {
		return CategoryOther
	}
	return CategoryOther
}
