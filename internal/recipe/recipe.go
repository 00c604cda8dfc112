// Package recipe models crafting-style recipes: ingredients, results and the
// closed set of recipe variants, and parses them from source documents.
package recipe

import (
	"slices"
)

// Kind identifies a recipe variant. Declaration order is the display
// precedence used when ordering recipes.
type Kind int

const (
	KindShaped Kind = iota
	KindShapeless
	KindTransmute
	KindStonecutting
	KindSmelting
	KindSmithing
	KindLegacySmithing
	KindBrewing
)

var kindNames = [...]string{
	KindShaped:         "shaped",
	KindShapeless:      "shapeless",
	KindTransmute:      "transmute",
	KindStonecutting:   "stonecutting",
	KindSmelting:       "smelting",
	KindSmithing:       "smithing",
	KindLegacySmithing: "legacy_smithing",
	KindBrewing:        "brewing",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// CraftResult is what a recipe produces.
type CraftResult struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Variant is the kind-specific part of a recipe. The set of implementations
// is closed: ShapedRecipe, ShapelessRecipe, TransmuteRecipe, SmeltingRecipe,
// StonecuttingRecipe, BrewingRecipe, SmithingRecipe, LegacySmithingRecipe.
type Variant interface {
	Kind() Kind
	// TableItem is the apparatus that performs the recipe.
	TableItem() string
	ingredients() []Ingredient
}

// Recipe is one transformation entry. Recipes are immutable once parsed.
type Recipe struct {
	Key      string
	Result   CraftResult
	Group    string
	Category string

	Version            string
	DatapackVersion    string
	RemovedVersion     string
	FeatureFlag        string
	RemovedInFlag      string
	FlagRemovedVersion string

	Experience float64
	Animated   bool
	Notes      string

	Variant Variant

	version versionValue
	removed versionValue
}

type versionValue struct {
	n  float64
	ok bool
}

// Kind returns the variant kind.
func (r *Recipe) Kind() Kind { return r.Variant.Kind() }

// TableItem returns the apparatus identifier for the recipe.
func (r *Recipe) TableItem() string { return r.Variant.TableItem() }

// Ingredients returns the recipe's ingredient references in slot order. A
// slot used more than once is listed more than once.
func (r *Recipe) Ingredients() []Ingredient { return slices.Clone(r.Variant.ingredients()) }

// VersionNumber is the comparable form of Version; recipes without a
// version report 0.
func (r *Recipe) VersionNumber() float64 { return r.version.n }

// RemovedNumber is the comparable form of RemovedVersion.
func (r *Recipe) RemovedNumber() (float64, bool) { return r.removed.n, r.removed.ok }

// Removed reports whether the recipe no longer exists in current versions.
func (r *Recipe) Removed() bool { return r.removed.ok }

// ImageName is the output image file name; animated recipes use a gif.
func (r *Recipe) ImageName() string {
	if r.Animated {
		return r.Key + ".gif"
	}
	return r.Key + ".png"
}

// SetVersions parses and stores the version strings. It exists for recipes
// built in code rather than parsed from a document.
func (r *Recipe) SetVersions(version, removed string) error {
	r.Version, r.RemovedVersion = version, removed
	return r.parseVersions()
}

func (r *Recipe) parseVersions() error {
	r.version, r.removed = versionValue{}, versionValue{}
	if r.Version != "" {
		n, err := ParseVersion(r.Version)
		if err != nil {
			return err
		}
		r.version = versionValue{n: n, ok: true}
	}
	if r.RemovedVersion != "" {
		n, err := ParseVersion(r.RemovedVersion)
		if err != nil {
			return err
		}
		r.removed = versionValue{n: n, ok: true}
	}
	return nil
}

// ReleaseChecker answers whether a feature flag has shipped.
type ReleaseChecker interface {
	IsReleased(flag string) bool
}

// Unreleased reports whether the recipe sits behind a flag that has not
// shipped yet.
func (r *Recipe) Unreleased(flags ReleaseChecker) bool {
	return r.FeatureFlag != "" && !flags.IsReleased(r.FeatureFlag)
}
