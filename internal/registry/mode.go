package registry

import (
	"strings"

	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
)

// Mode selects which side of a recipe a query matches.
type Mode string

const (
	// ModeOutput matches recipe results: "what makes X".
	ModeOutput Mode = "output"
	// ModeIngredient matches recipe inputs: "what uses X".
	ModeIngredient Mode = "ingredient"
)

// ParseMode accepts "output" and "ingredient" case-insensitively, plus
// the short forms "makes" and "uses".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "output", "makes", "":
		return ModeOutput, nil
	case "ingredient", "uses":
		return ModeIngredient, nil
	default:
		return "", derrors.ValidationError("unknown search mode").WithContext("mode", s)
	}
}

// Search runs query in mode and returns the matches in display order.
func (reg *Registry) Search(mode Mode, query string) ([]*recipe.Recipe, error) {
	var (
		list []*recipe.Recipe
		err  error
	)
	switch mode {
	case ModeOutput:
		list, err = reg.SearchOutput(query)
	case ModeIngredient:
		list, err = reg.SearchIngredient(query)
	default:
		return nil, derrors.ValidationError("unknown search mode").WithContext("mode", string(mode))
	}
	if err != nil {
		return nil, err
	}
	return reg.Sort(list), nil
}
