package registry

import (
	"strings"

	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
)

// SearchOutput finds recipes producing the item named by query. Loose
// queries ("Oak Planks") are canonicalised first; a query starting with '#'
// searches every item of that tag. Unknown items give an empty list; only a
// malformed tag query is an error.
func (reg *Registry) SearchOutput(query string) ([]*recipe.Recipe, error) {
	return reg.search(query, reg.SearchItemOutput)
}

// SearchIngredient finds recipes consuming the item named by query, with the
// same query rules as SearchOutput.
func (reg *Registry) SearchIngredient(query string) ([]*recipe.Recipe, error) {
	return reg.search(query, reg.SearchItemIngredient)
}

func (reg *Registry) search(query string, byItem func(string) []*recipe.Recipe) ([]*recipe.Recipe, error) {
	if !isTagQuery(query) {
		item := recipe.Canonical(query)
		if item == "" {
			return nil, nil
		}
		return byItem(item), nil
	}

	name := strings.TrimPrefix(strings.TrimSpace(query), "#")
	items, err := reg.tags.Resolve(name)
	if err != nil {
		return nil, derrors.QueryInvalid(query, err)
	}
	var out []*recipe.Recipe
	seen := make(map[*recipe.Recipe]bool)
	for _, item := range items {
		for _, r := range byItem(item) {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// SearchItemOutput returns recipes whose result is item, in load order.
// Blasting, smoking and campfire recipes are left out since they repeat a
// plain smelting recipe. A water bucket search always lists the sponge
// recipe.
func (reg *Registry) SearchItemOutput(item string) []*recipe.Recipe {
	var out []*recipe.Recipe
	for _, key := range reg.keys {
		r := reg.recipes[key]
		if r.Result.Item != item {
			continue
		}
		if s, ok := r.Variant.(*recipe.SmeltingRecipe); ok && s.Type != recipe.SmeltingTypeSmelting {
			continue
		}
		out = append(out, r)
	}
	if item == recipe.WaterBucket {
		found := false
		for _, r := range out {
			if r == reg.sponge {
				found = true
				break
			}
		}
		if !found {
			out = append(out, reg.sponge)
		}
	}
	return out
}

// SearchItemIngredient returns recipes whose expanded ingredient items
// contain item, in load order.
func (reg *Registry) SearchItemIngredient(item string) []*recipe.Recipe {
	var out []*recipe.Recipe
	for _, key := range reg.keys {
		r := reg.recipes[key]
		for _, it := range reg.items[r] {
			if it == item {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
