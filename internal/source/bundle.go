package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Bundle is the set of documents a registry is built from.
type Bundle struct {
	// Recipes maps recipe key to recipe object, in load order.
	Recipes *Map
	// Tags maps feature layer to a table of tag name to entry array.
	Tags *Map
	// Features lists feature flag definitions in release order.
	Features []any
}

// Paths locates the documents of a Bundle. Tags and Features are optional.
type Paths struct {
	Recipes  string
	Tags     string
	Features string
}

// Resolve joins relative paths onto dir.
func (p Paths) Resolve(dir string) Paths {
	join := func(s string) string {
		if s == "" || filepath.IsAbs(s) || dir == "" {
			return s
		}
		return filepath.Join(dir, s)
	}
	return Paths{Recipes: join(p.Recipes), Tags: join(p.Tags), Features: join(p.Features)}
}

// Files returns the configured, non-empty paths.
func (p Paths) Files() []string {
	var out []string
	for _, s := range []string{p.Recipes, p.Tags, p.Features} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// LoadFile decodes a file by extension: .json as JSON, .yaml/.yml as YAML.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var v any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		v, err = DecodeJSON(bytes.NewReader(data))
	case ".yaml", ".yml":
		v, err = DecodeYAML(data)
	default:
		return nil, fmt.Errorf("%s: unsupported document extension %q", path, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}

// LoadBundle decodes the documents named by p concurrently.
func LoadBundle(ctx context.Context, p Paths) (*Bundle, error) {
	if p.Recipes == "" {
		return nil, fmt.Errorf("recipes document path is required")
	}

	var recipes, tags, features any
	g, _ := errgroup.WithContext(ctx)
	load := func(path string, dst *any) {
		if path == "" {
			return
		}
		g.Go(func() error {
			v, err := LoadFile(path)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		})
	}
	load(p.Recipes, &recipes)
	load(p.Tags, &tags)
	load(p.Features, &features)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewBundle(recipes, tags, features)
}

// NewBundle checks the top-level shapes of already decoded documents.
// tags and features may be nil.
func NewBundle(recipes, tags, features any) (*Bundle, error) {
	b := &Bundle{}

	rm, ok := recipes.(*Map)
	if !ok {
		return nil, fmt.Errorf("recipes document: expected object, got %s", TypeName(recipes))
	}
	b.Recipes = rm

	switch t := tags.(type) {
	case nil:
		b.Tags = NewMap()
	case *Map:
		b.Tags = t
	default:
		return nil, fmt.Errorf("tags document: expected object, got %s", TypeName(tags))
	}

	switch f := features.(type) {
	case nil:
	case []any:
		b.Features = f
	case *Map:
		// {"features": [...]} wrapper
		inner, ok := f.Get("features")
		list, isList := inner.([]any)
		if !ok || !isList {
			return nil, fmt.Errorf("features document: expected array or {features: [...]}")
		}
		b.Features = list
	default:
		return nil, fmt.Errorf("features document: expected array, got %s", TypeName(features))
	}

	return b, nil
}
