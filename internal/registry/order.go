package registry

import (
	"cmp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/craftbook/internal/recipe"
)

// Compare orders recipes for display. Keys, in precedence:
//
//  1. current recipes before removed ones, earlier removals first
//  2. when either is unreleased, feature flag release order
//  3. version, unversioned first
//  4. variant kind
//  5. smithing transform before trim
//  6. key
//
// Keys are unique, so distinct recipes never compare equal.
func (reg *Registry) Compare(a, b *recipe.Recipe) int {
	aRemoved, aOK := a.RemovedNumber()
	bRemoved, bOK := b.RemovedNumber()
	switch {
	case aOK != bOK:
		if aOK {
			return 1
		}
		return -1
	case aOK:
		if c := cmp.Compare(aRemoved, bRemoved); c != 0 {
			return c
		}
	}

	if reg.Unreleased(a) || reg.Unreleased(b) {
		if c := cmp.Compare(reg.flags.Order(a.FeatureFlag), reg.flags.Order(b.FeatureFlag)); c != 0 {
			return c
		}
	}

	if c := cmp.Compare(a.VersionNumber(), b.VersionNumber()); c != 0 {
		return c
	}

	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}

	as, aSmithing := a.Variant.(*recipe.SmithingRecipe)
	bs, bSmithing := b.Variant.(*recipe.SmithingRecipe)
	if aSmithing && bSmithing {
		if c := cmp.Compare(as.Type, bs.Type); c != 0 {
			return c
		}
	}

	return strings.Compare(a.Key, b.Key)
}

// Sort returns a sorted copy of list.
func (reg *Registry) Sort(list []*recipe.Recipe) []*recipe.Recipe {
	out := slices.Clone(list)
	slices.SortStableFunc(out, reg.Compare)
	return out
}
