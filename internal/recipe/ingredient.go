package recipe

import (
	"errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/craftbook/internal/source"
)

// ErrMalformedIngredient is returned for ingredient data of an unsupported shape.
var ErrMalformedIngredient = errors.New("malformed ingredient")

// IngredientKind tells an item reference from a tag reference.
type IngredientKind uint8

const (
	IngredientItem IngredientKind = iota
	IngredientTag
)

// Ingredient references either a concrete item or a named tag.
type Ingredient struct {
	Kind IngredientKind
	// ID is the item identifier, or the tag name without the leading '#'.
	ID string
}

// Item returns an item ingredient for id in canonical form.
func Item(id string) Ingredient { return Ingredient{Kind: IngredientItem, ID: CanonicalID(id)} }

// Tag returns a tag ingredient.
func Tag(name string) Ingredient { return Ingredient{Kind: IngredientTag, ID: name} }

// IsTag reports whether i references a tag.
func (i Ingredient) IsTag() bool { return i.Kind == IngredientTag }

func (i Ingredient) String() string {
	if i.IsTag() {
		return "#" + i.ID
	}
	return i.ID
}

// ParseIngredientGroup parses one ingredient slot.
//
// A string is a single ingredient: "#name" is a tag, anything else an item.
// An array of strings is one item per element; arrays never carry tag syntax.
// Objects of the form {"item": ...} or {"tag": ...}, alone or in an array,
// are accepted as well.
func ParseIngredientGroup(v any) ([]Ingredient, error) {
	switch t := v.(type) {
	case string:
		return []Ingredient{parseRef(t)}, nil
	case *source.Map:
		ing, err := parseObject(t)
		if err != nil {
			return nil, err
		}
		return []Ingredient{ing}, nil
	case []any:
		out := make([]Ingredient, 0, len(t))
		for i, e := range t {
			switch et := e.(type) {
			case string:
				out = append(out, Item(et))
			case *source.Map:
				ing, err := parseObject(et)
				if err != nil {
					return nil, fmt.Errorf("element %d: %w", i, err)
				}
				out = append(out, ing)
			default:
				return nil, fmt.Errorf("%w: element %d is %s", ErrMalformedIngredient, i, source.TypeName(e))
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %s", ErrMalformedIngredient, source.TypeName(v))
	}
}

func parseRef(s string) Ingredient {
	if name, ok := strings.CutPrefix(s, "#"); ok {
		return Tag(name)
	}
	return Item(s)
}

func parseObject(m *source.Map) (Ingredient, error) {
	if id, ok, err := m.String("item"); err != nil {
		return Ingredient{}, fmt.Errorf("%w: %v", ErrMalformedIngredient, err)
	} else if ok {
		return Item(id), nil
	}
	if name, ok, err := m.String("tag"); err != nil {
		return Ingredient{}, fmt.Errorf("%w: %v", ErrMalformedIngredient, err)
	} else if ok {
		return Tag(strings.TrimPrefix(name, "#")), nil
	}
	return Ingredient{}, fmt.Errorf("%w: object has neither \"item\" nor \"tag\"", ErrMalformedIngredient)
}
