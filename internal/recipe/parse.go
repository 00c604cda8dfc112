package recipe

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"git.home.luguber.info/inful/craftbook/internal/source"
)

// ErrUnsupportedType is returned for a recipe type outside the dispatch table.
var ErrUnsupportedType = errors.New("unsupported recipe type")

type variantParser func(m *source.Map, typ string) (Variant, error)

var dispatch = map[string]variantParser{
	"crafting_shaped":                     parseShaped,
	"crafting_special_tippedarrow":        parseShaped,
	"crafting_special_decorated_pot":      parseShaped,
	"crafting_shapeless":                  parseShapeless,
	"crafting_special_firework_star":      parseShapeless,
	"crafting_special_firework_star_fade": parseShapeless,
	"crafting_special_firework_rocket":    parseShapeless,
	"crafting_special_shulkerboxcoloring": parseShapeless,
	"crafting_special_suspiciousstew":     parseShapeless,
	"crafting_transmute":                  parseTransmute,
	"smelting":                            parseSmelting,
	"blasting":                            parseSmelting,
	"smoking":                             parseSmelting,
	"campfire_cooking":                    parseSmelting,
	"brewing":                             parseBrewing,
	"stonecutting":                        parseStonecutting,
	"smithing":                            parseLegacySmithing,
	"smithing_trim":                       parseSmithing,
	"smithing_transform":                  parseSmithing,
}

// SupportedType reports whether typ (with or without namespace) can be parsed.
func SupportedType(typ string) bool {
	_, ok := dispatch[LocalName(typ)]
	return ok
}

// Parse builds a recipe from its document entry.
func Parse(key string, v any) (*Recipe, error) {
	m, ok := v.(*source.Map)
	if !ok {
		return nil, fmt.Errorf("recipe %q: expected object, got %s", key, source.TypeName(v))
	}

	rawType, ok, err := m.String("type")
	if err != nil {
		return nil, fmt.Errorf("recipe %q: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("recipe %q: missing type", key)
	}
	typ := LocalName(rawType)
	parse, ok := dispatch[typ]
	if !ok {
		return nil, fmt.Errorf("recipe %q: %w %q", key, ErrUnsupportedType, rawType)
	}

	variant, err := parse(m, typ)
	if err != nil {
		return nil, fmt.Errorf("recipe %q: %w", key, err)
	}

	r := &Recipe{Key: key, Variant: variant}
	if err := parseCommon(r, m); err != nil {
		return nil, fmt.Errorf("recipe %q: %w", key, err)
	}
	return r, nil
}

func parseCommon(r *Recipe, m *source.Map) error {
	strs := []struct {
		field string
		dst   *string
	}{
		{"group", &r.Group},
		{"category", &r.Category},
		{"version", &r.Version},
		{"datapack_version", &r.DatapackVersion},
		{"removed_version", &r.RemovedVersion},
		{"feature_flag", &r.FeatureFlag},
		{"removed_in_flag", &r.RemovedInFlag},
		{"flag_removed_version", &r.FlagRemovedVersion},
		{"notes", &r.Notes},
	}
	for _, s := range strs {
		v, _, err := m.String(s.field)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	xp, _, err := m.Number("experience")
	if err != nil {
		return err
	}
	if xp < 0 {
		return fmt.Errorf("experience must not be negative, got %v", xp)
	}
	r.Experience = xp

	if r.Animated, _, err = m.Bool("animated"); err != nil {
		return err
	}

	result, err := parseResult(m, r.Variant)
	if err != nil {
		return err
	}
	r.Result = result

	return r.parseVersions()
}

func parseResult(m *source.Map, variant Variant) (CraftResult, error) {
	v, ok := m.Get("result")
	if !ok || v == nil {
		// Trim recipes change components only; the output is the base item.
		if s, isSmithing := variant.(*SmithingRecipe); isSmithing && s.Type == SmithingTrim {
			for _, ing := range s.Base {
				if !ing.IsTag() {
					return CraftResult{Item: ing.ID, Count: 1}, nil
				}
			}
		}
		return CraftResult{}, fmt.Errorf("missing result")
	}

	switch t := v.(type) {
	case string:
		return CraftResult{Item: CanonicalID(t), Count: 1}, nil
	case *source.Map:
		id, ok, err := t.String("id")
		if err != nil {
			return CraftResult{}, fmt.Errorf("result: %w", err)
		}
		if !ok {
			if id, ok, err = t.String("item"); err != nil {
				return CraftResult{}, fmt.Errorf("result: %w", err)
			}
		}
		if !ok || id == "" {
			return CraftResult{}, fmt.Errorf("result: missing id")
		}
		count := 1
		if n, ok, err := t.Number("count"); err != nil {
			return CraftResult{}, fmt.Errorf("result: %w", err)
		} else if ok {
			if n < 1 || n != math.Trunc(n) {
				return CraftResult{}, fmt.Errorf("result: count must be a positive integer, got %v", n)
			}
			count = int(n)
		}
		return CraftResult{Item: CanonicalID(id), Count: count}, nil
	default:
		return CraftResult{}, fmt.Errorf("result: expected string or object, got %s", source.TypeName(v))
	}
}

// group parses a required ingredient group field.
func group(m *source.Map, field string) ([]Ingredient, error) {
	v, ok := m.Get(field)
	if !ok {
		return nil, fmt.Errorf("missing %q", field)
	}
	g, err := ParseIngredientGroup(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return g, nil
}

func specialName(typ string) string {
	if len(typ) > len("crafting_special_") && typ[:len("crafting_special_")] == "crafting_special_" {
		return typ
	}
	return ""
}

func parseShaped(m *source.Map, typ string) (Variant, error) {
	s := &ShapedRecipe{Keys: make(map[rune][]Ingredient), Special: specialName(typ), ShowNotification: true}

	rawPattern, ok := m.Get("pattern")
	if !ok {
		return nil, fmt.Errorf("missing \"pattern\"")
	}
	rows, ok := rawPattern.([]any)
	if !ok || len(rows) == 0 || len(rows) > GridWidth {
		return nil, fmt.Errorf("pattern: expected 1 to %d rows", GridWidth)
	}
	for i, rv := range rows {
		row, ok := rv.(string)
		if !ok {
			return nil, fmt.Errorf("pattern row %d: expected string, got %s", i, source.TypeName(rv))
		}
		n := utf8.RuneCountInString(row)
		if n > GridWidth {
			return nil, fmt.Errorf("pattern row %d: %q is wider than %d", i, row, GridWidth)
		}
		for ; n < GridWidth; n++ {
			row += " "
		}
		s.Pattern = append(s.Pattern, row)
	}

	keys, ok, err := m.Object("key")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("missing \"key\"")
	}
	for _, k := range keys.Keys() {
		if utf8.RuneCountInString(k) != 1 {
			return nil, fmt.Errorf("key %q: symbols must be a single character", k)
		}
		c, _ := utf8.DecodeRuneInString(k)
		if c == ' ' {
			return nil, fmt.Errorf("key: space is reserved for blank cells")
		}
		v, _ := keys.Get(k)
		g, err := ParseIngredientGroup(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		s.KeyOrder = append(s.KeyOrder, c)
		s.Keys[c] = g
	}

	for i, row := range s.Pattern {
		for _, c := range row {
			if c == ' ' {
				continue
			}
			if _, ok := s.Keys[c]; !ok {
				return nil, fmt.Errorf("pattern row %d: symbol %q is not in key", i, c)
			}
		}
	}

	if show, ok, err := m.Bool("show_notification"); err != nil {
		return nil, err
	} else if ok {
		s.ShowNotification = show
	}
	return s, nil
}

func parseShapeless(m *source.Map, typ string) (Variant, error) {
	v, ok := m.Get("ingredients")
	if !ok {
		return nil, fmt.Errorf("missing \"ingredients\"")
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("ingredients: expected array, got %s", source.TypeName(v))
	}
	s := &ShapelessRecipe{Special: specialName(typ)}
	for i, e := range list {
		g, err := ParseIngredientGroup(e)
		if err != nil {
			return nil, fmt.Errorf("ingredients[%d]: %w", i, err)
		}
		s.Groups = append(s.Groups, g)
	}
	return s, nil
}

func parseTransmute(m *source.Map, _ string) (Variant, error) {
	input, err := group(m, "input")
	if err != nil {
		return nil, err
	}
	material, err := group(m, "material")
	if err != nil {
		return nil, err
	}
	include, _, err := m.Bool("include_result")
	if err != nil {
		return nil, err
	}
	return &TransmuteRecipe{Input: input, Material: material, IncludeResult: include}, nil
}

func parseSmelting(m *source.Map, typ string) (Variant, error) {
	var t SmeltingType
	for i, name := range smeltingTypeNames {
		if name == typ {
			t = SmeltingType(i)
		}
	}
	ing, err := group(m, "ingredient")
	if err != nil {
		return nil, err
	}
	s := &SmeltingRecipe{Type: t, Ingredient: ing, CookingTime: defaultCookingTime[t]}
	if n, ok, err := m.Number("cookingtime"); err != nil {
		return nil, err
	} else if ok {
		if n <= 0 {
			return nil, fmt.Errorf("cookingtime must be positive, got %v", n)
		}
		s.CookingTime = int(n)
	}
	return s, nil
}

func parseStonecutting(m *source.Map, _ string) (Variant, error) {
	ing, err := group(m, "ingredient")
	if err != nil {
		return nil, err
	}
	return &StonecuttingRecipe{Ingredient: ing}, nil
}

func parseBrewing(m *source.Map, _ string) (Variant, error) {
	reagent, err := group(m, "reagent")
	if err != nil {
		return nil, err
	}
	base, err := group(m, "base")
	if err != nil {
		return nil, err
	}
	return &BrewingRecipe{Reagent: reagent, Base: base}, nil
}

func parseSmithing(m *source.Map, typ string) (Variant, error) {
	s := &SmithingRecipe{Type: SmithingTransform}
	if typ == "smithing_trim" {
		s.Type = SmithingTrim
	}
	var err error
	if s.Base, err = group(m, "base"); err != nil {
		return nil, err
	}
	if s.Template, err = group(m, "template"); err != nil {
		return nil, err
	}
	if s.Addition, err = group(m, "addition"); err != nil {
		return nil, err
	}
	return s, nil
}

func parseLegacySmithing(m *source.Map, _ string) (Variant, error) {
	base, err := group(m, "base")
	if err != nil {
		return nil, err
	}
	addition, err := group(m, "addition")
	if err != nil {
		return nil, err
	}
	return &LegacySmithingRecipe{Base: base, Addition: addition}, nil
}
