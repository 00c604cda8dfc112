package responses

import (
	"log/slog"

	"git.home.luguber.info/inful/craftbook/internal/browse"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/markdown"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/registry"
)

// Recipe builds the full view of r.
func Recipe(reg *registry.Registry, r *recipe.Recipe) RecipeView {
	v := RecipeView{
		Key:         r.Key,
		Kind:        r.Kind().String(),
		Result:      r.Result,
		Apparatus:   r.TableItem(),
		Group:       r.Group,
		Category:    r.Category,
		Experience:  r.Experience,
		Ingredients: ingredientStrings(r.Ingredients()),
		Items:       reg.IngredientItems(r),
		Version:     reg.EffectiveVersion(r),
		Removed:     r.RemovedVersion,
		FeatureFlag: r.FeatureFlag,
		Unreleased:  reg.Unreleased(r),
		Image:       r.ImageName(),
		Notes:       r.Notes,
	}
	switch t := r.Variant.(type) {
	case *recipe.ShapedRecipe:
		v.Pattern = t.Pattern
	case *recipe.SmeltingRecipe:
		v.Type = t.Type.String()
		v.CookingTime = t.CookingTime
	case *recipe.SmithingRecipe:
		v.Type = t.Type.String()
	}
	if v.Items == nil {
		v.Items = []string{}
	}

	if r.Notes != "" {
		html, err := markdown.RenderHTML(r.Notes)
		if err != nil {
			slog.Warn("Failed to render recipe notes", logfields.RecipeKey(r.Key), logfields.Error(err))
		}
		v.NotesHTML = html
		v.NoteLinks = markdown.Links(r.Notes)
	}
	return v
}

// Summaries builds list entries for recipes in the given order.
func Summaries(reg *registry.Registry, list []*recipe.Recipe) []RecipeSummary {
	out := make([]RecipeSummary, len(list))
	for i, r := range list {
		out[i] = RecipeSummary{
			Key:     r.Key,
			Kind:    r.Kind().String(),
			Result:  r.Result,
			Version: reg.EffectiveVersion(r),
		}
	}
	return out
}

// Page builds the view of a rendered browsing page.
func Page(reg *registry.Registry, p browse.Page) PageView {
	actions := make([]ActionView, len(p.Actions))
	for i, a := range p.Actions {
		actions[i] = ActionView{Slot: a.Slot.String(), Enabled: a.Enabled, Description: a.Description}
	}
	return PageView{
		Index:   p.Index,
		Total:   p.Total,
		Recipe:  Recipe(reg, p.Recipe),
		Actions: actions,
	}
}

func ingredientStrings(ings []recipe.Ingredient) []string {
	out := make([]string, len(ings))
	for i, ing := range ings {
		out[i] = ing.String()
	}
	return out
}
