// Package tags expands named item groups into flat item lists.
//
// A tag document maps each feature layer to a table of tag name to entries.
// Entries are item identifiers or "#name" references to other tags.
// Resolving a tag walks the layers in release order and concatenates what
// each layer defines, recursing into nested references. Results are not
// deduplicated.
package tags

import (
	"errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/source"
)

var (
	// ErrCycle is returned when a tag refers back to itself.
	ErrCycle = errors.New("tag cycle")
	// ErrNamespace is returned for tags outside the default namespace.
	ErrNamespace = errors.New("unsupported tag namespace")
	// ErrMalformed is returned for badly shaped tag names or tables.
	ErrMalformed = errors.New("malformed tag")
)

// Resolver expands tags against a fixed tag document.
type Resolver struct {
	layers []string
	tables map[string]map[string][]string
}

// NewResolver indexes doc. layers is the release order; doc may define a
// subset of them but no others. A nil doc yields a resolver with no tags.
func NewResolver(doc *source.Map, layers []string) (*Resolver, error) {
	r := &Resolver{
		layers: append([]string(nil), layers...),
		tables: make(map[string]map[string][]string),
	}
	if doc == nil {
		return r, nil
	}

	known := make(map[string]bool, len(layers))
	for _, l := range layers {
		known[l] = true
	}
	for _, layer := range doc.Keys() {
		if !known[layer] {
			return nil, fmt.Errorf("%w: unknown feature layer %q", ErrMalformed, layer)
		}
		table, _, err := doc.Object(layer)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %q: %v", ErrMalformed, layer, err)
		}
		idx := make(map[string][]string, table.Len())
		for _, name := range table.Keys() {
			canon, err := canonical(name)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", layer, err)
			}
			if _, dup := idx[canon]; dup {
				return nil, fmt.Errorf("%w: layer %q defines %q twice", ErrMalformed, layer, canon)
			}
			v, _ := table.Get(name)
			entries, err := stringList(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s in layer %q: %v", ErrMalformed, canon, layer, err)
			}
			idx[canon] = entries
		}
		r.tables[layer] = idx
	}
	return r, nil
}

func stringList(v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %s", source.TypeName(v))
	}
	out := make([]string, 0, len(list))
	for i, e := range list {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: expected string, got %s", i, source.TypeName(e))
		}
		out = append(out, s)
	}
	return out, nil
}

// canonical applies the default namespace and rejects any other.
func canonical(name string) (string, error) {
	ns, local, err := recipe.SplitID(strings.TrimPrefix(name, "#"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if local == "" {
		return "", fmt.Errorf("%w: %q has an empty name", ErrMalformed, name)
	}
	if ns != recipe.DefaultNamespace {
		return "", fmt.Errorf("%w: %q", ErrNamespace, name)
	}
	return ns + ":" + local, nil
}

// Resolve expands the tag name (with or without '#' and namespace) into
// concrete item identifiers in layer-then-document order.
func (r *Resolver) Resolve(name string) ([]string, error) {
	var out []string
	if err := r.resolve(name, make(map[string]bool), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resolver) resolve(name string, path map[string]bool, out *[]string) error {
	canon, err := canonical(name)
	if err != nil {
		return err
	}
	if path[canon] {
		return fmt.Errorf("%w: %s", ErrCycle, canon)
	}
	path[canon] = true
	defer delete(path, canon)

	for _, layer := range r.layers {
		entries, ok := r.tables[layer][canon]
		if !ok {
			continue
		}
		for _, e := range entries {
			if nested, isTag := strings.CutPrefix(e, "#"); isTag {
				if err := r.resolve(nested, path, out); err != nil {
					return fmt.Errorf("%s: %w", canon, err)
				}
				continue
			}
			*out = append(*out, recipe.CanonicalID(e))
		}
	}
	return nil
}

// Defined reports whether any layer defines name.
func (r *Resolver) Defined(name string) bool {
	canon, err := canonical(name)
	if err != nil {
		return false
	}
	for _, t := range r.tables {
		if _, ok := t[canon]; ok {
			return true
		}
	}
	return false
}

// Expand flattens ingredients into item identifiers, resolving tags in place.
func (r *Resolver) Expand(ings []recipe.Ingredient) ([]string, error) {
	out := make([]string, 0, len(ings))
	for _, ing := range ings {
		if !ing.IsTag() {
			out = append(out, ing.ID)
			continue
		}
		if err := r.resolve(ing.ID, make(map[string]bool), &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
