package recipe

import (
	"strings"
)

// GridWidth is the width and height of a crafting grid.
const GridWidth = 3

// ShapedRecipe is a crafting-table recipe with a fixed grid layout.
type ShapedRecipe struct {
	// Pattern has up to three rows, each padded with blanks to GridWidth.
	Pattern []string
	// KeyOrder lists the pattern symbols in document order.
	KeyOrder []rune
	Keys     map[rune][]Ingredient

	ShowNotification bool
	// Special is the crafting_special_* type this recipe was declared with, if any.
	Special string
}

func (*ShapedRecipe) Kind() Kind        { return KindShaped }
func (*ShapedRecipe) TableItem() string { return CraftingTable }

func (s *ShapedRecipe) ingredients() []Ingredient {
	var out []Ingredient
	for _, row := range s.Pattern {
		for _, c := range row {
			if c == ' ' {
				continue
			}
			out = append(out, s.Keys[c]...)
		}
	}
	return out
}

// Cell returns the ingredient group at row, col; nil for blank cells.
func (s *ShapedRecipe) Cell(row, col int) []Ingredient {
	if row < 0 || row >= len(s.Pattern) || col < 0 || col >= GridWidth {
		return nil
	}
	c := []rune(s.Pattern[row])[col]
	if c == ' ' {
		return nil
	}
	return s.Keys[c]
}

// ShapelessRecipe is a crafting-table recipe whose inputs may go anywhere.
type ShapelessRecipe struct {
	Groups  [][]Ingredient
	Special string
}

func (*ShapelessRecipe) Kind() Kind        { return KindShapeless }
func (*ShapelessRecipe) TableItem() string { return CraftingTable }

func (s *ShapelessRecipe) ingredients() []Ingredient { return flatten(s.Groups...) }

// TransmuteRecipe changes an input item into the result using a material,
// keeping the input's components.
type TransmuteRecipe struct {
	Input    []Ingredient
	Material []Ingredient
	// IncludeResult keeps the result item in the ingredient item list when
	// it is reachable through Input or Material.
	IncludeResult bool
}

func (*TransmuteRecipe) Kind() Kind        { return KindTransmute }
func (*TransmuteRecipe) TableItem() string { return CraftingTable }

func (t *TransmuteRecipe) ingredients() []Ingredient { return flatten(t.Input, t.Material) }

// SmeltingType is the cooking apparatus family of a SmeltingRecipe.
type SmeltingType int

const (
	SmeltingTypeSmelting SmeltingType = iota
	SmeltingTypeBlasting
	SmeltingTypeSmoking
	SmeltingTypeCampfire
)

var smeltingTypeNames = [...]string{
	SmeltingTypeSmelting: "smelting",
	SmeltingTypeBlasting: "blasting",
	SmeltingTypeSmoking:  "smoking",
	SmeltingTypeCampfire: "campfire_cooking",
}

var defaultCookingTime = [...]int{
	SmeltingTypeSmelting: 200,
	SmeltingTypeBlasting: 100,
	SmeltingTypeSmoking:  100,
	SmeltingTypeCampfire: 600,
}

func (t SmeltingType) String() string { return smeltingTypeNames[t] }

// Apparatus is the block that performs this cooking type.
func (t SmeltingType) Apparatus() string {
	switch t {
	case SmeltingTypeBlasting:
		return BlastFurnace
	case SmeltingTypeSmoking:
		return Smoker
	case SmeltingTypeCampfire:
		return Campfire
	default:
		return Furnace
	}
}

// SmeltingRecipe covers furnace, blast furnace, smoker and campfire cooking.
type SmeltingRecipe struct {
	Type        SmeltingType
	Ingredient  []Ingredient
	CookingTime int
}

func (*SmeltingRecipe) Kind() Kind        { return KindSmelting }
func (*SmeltingRecipe) TableItem() string { return Furnace }

func (s *SmeltingRecipe) ingredients() []Ingredient { return flatten(s.Ingredient) }

// CompanionKey derives the key of the recipe that cooks the same thing with
// another apparatus: "iron_ingot_from_smelting_raw_iron" has the blasting
// companion "iron_ingot_from_blasting_raw_iron"; "cooked_beef" has
// "cooked_beef_from_smoking".
func CompanionKey(key string, t SmeltingType) string {
	for _, name := range smeltingTypeNames {
		marker := "_from_" + name
		if i := strings.Index(key, marker); i >= 0 {
			return key[:i] + "_from_" + t.String() + key[i+len(marker):]
		}
	}
	if t == SmeltingTypeSmelting {
		return key
	}
	return key + "_from_" + t.String()
}

// StonecuttingRecipe turns one block into another at a stonecutter.
type StonecuttingRecipe struct {
	Ingredient []Ingredient
}

func (*StonecuttingRecipe) Kind() Kind        { return KindStonecutting }
func (*StonecuttingRecipe) TableItem() string { return Stonecutter }

func (s *StonecuttingRecipe) ingredients() []Ingredient { return flatten(s.Ingredient) }

// BrewingRecipe adds a reagent to a base potion.
type BrewingRecipe struct {
	Reagent []Ingredient
	Base    []Ingredient
}

func (*BrewingRecipe) Kind() Kind        { return KindBrewing }
func (*BrewingRecipe) TableItem() string { return BrewingStand }

func (b *BrewingRecipe) ingredients() []Ingredient { return flatten(b.Reagent, b.Base) }

// SmithingType distinguishes smithing transforms from armor trims.
type SmithingType int

const (
	SmithingTransform SmithingType = iota
	SmithingTrim
)

func (t SmithingType) String() string {
	if t == SmithingTrim {
		return "smithing_trim"
	}
	return "smithing_transform"
}

// SmithingRecipe is a template-based smithing table recipe.
type SmithingRecipe struct {
	Type     SmithingType
	Base     []Ingredient
	Template []Ingredient
	Addition []Ingredient
}

func (*SmithingRecipe) Kind() Kind        { return KindSmithing }
func (*SmithingRecipe) TableItem() string { return SmithingTable }

func (s *SmithingRecipe) ingredients() []Ingredient { return flatten(s.Base, s.Template, s.Addition) }

// LegacySmithingRecipe predates smithing templates.
type LegacySmithingRecipe struct {
	Base     []Ingredient
	Addition []Ingredient
}

func (*LegacySmithingRecipe) Kind() Kind        { return KindLegacySmithing }
func (*LegacySmithingRecipe) TableItem() string { return SmithingTable }

func (s *LegacySmithingRecipe) ingredients() []Ingredient { return flatten(s.Base, s.Addition) }

func flatten(groups ...[]Ingredient) []Ingredient {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]Ingredient, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
