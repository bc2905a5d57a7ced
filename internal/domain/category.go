package domain

// Category is one of the seven psychographic dimensions scored by the quiz.
type Category string

const (
	CategoryRomantic     Category = "romantic"
	CategoryAdventurous  Category = "adventurous"
	CategoryIntellectual Category = "intellectual"
	CategoryCreative     Category = "creative"
	CategoryChill        Category = "chill"
	CategorySocial       Category = "social"
	CategoryAmbitious    Category = "ambitious"
)

// Categories lists every dimension in its fixed preference order.
// The order matters: it is the tie-break for dominant-category assignment
// and the index order of ScoreVector.
var Categories = [NumCategories]Category{
	CategoryRomantic,
	CategoryAdventurous,
	CategoryIntellectual,
	CategoryCreative,
	CategoryChill,
	CategorySocial,
	CategoryAmbitious,
}

// NumCategories is the number of scored dimensions.
const NumCategories = 7

var categoryIndex = map[Category]int{
	CategoryRomantic:     0,
	CategoryAdventurous:  1,
	CategoryIntellectual: 2,
	CategoryCreative:     3,
	CategoryChill:        4,
	CategorySocial:       5,
	CategoryAmbitious:    6,
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	_, ok := categoryIndex[Category(s)]
	return ok
}
