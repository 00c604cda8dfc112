// Package registry holds the parsed recipe knowledge base and answers
// "what makes X" and "what uses X" queries against it.
//
// A Registry is built once by Load and never changes afterwards; it is safe
// for concurrent readers. Reloading means building a new Registry.
package registry

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/feature"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/source"
	"git.home.luguber.info/inful/craftbook/internal/tags"
)

// SpongeKey is the key of the recipe shown alongside water bucket results.
const SpongeKey = "sponge"

// Registry is an ordered, read-only map of recipe key to recipe.
type Registry struct {
	keys    []string
	recipes map[string]*recipe.Recipe
	// items caches the tag-expanded ingredient items of every loaded recipe.
	items map[*recipe.Recipe][]string

	flags  *feature.Set
	tags   *tags.Resolver
	sponge *recipe.Recipe
	loaded time.Time
}

type options struct {
	logger *slog.Logger
}

// Option configures Load.
type Option func(*options)

// WithLogger sets the logger used to report load progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Load parses every recipe in b in document order and indexes it. Any
// malformed recipe or tag reference aborts the load. A nil flags set means
// only the vanilla layer exists.
func Load(b *source.Bundle, flags *feature.Set, opts ...Option) (*Registry, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()

	if b == nil || b.Recipes == nil {
		return nil, derrors.LoadFailed("recipes", errMissingRecipes)
	}
	if flags == nil {
		flags = feature.Default()
	}

	resolver, err := tags.NewResolver(b.Tags, flags.Layers())
	if err != nil {
		return nil, derrors.LoadFailed("tags", err)
	}

	reg := &Registry{
		keys:    make([]string, 0, b.Recipes.Len()),
		recipes: make(map[string]*recipe.Recipe, b.Recipes.Len()),
		items:   make(map[*recipe.Recipe][]string, b.Recipes.Len()),
		flags:   flags,
		tags:    resolver,
	}

	for _, key := range b.Recipes.Keys() {
		v, _ := b.Recipes.Get(key)
		r, err := recipe.Parse(key, v)
		if err != nil {
			return nil, derrors.RecipeInvalid(key, err)
		}
		items, err := reg.expand(r)
		if err != nil {
			return nil, derrors.RecipeInvalid(key, err).WithContext("stage", "tags")
		}
		reg.keys = append(reg.keys, key)
		reg.recipes[key] = r
		reg.items[r] = items
	}

	if r, ok := reg.recipes[SpongeKey]; ok {
		reg.sponge = r
	} else {
		reg.sponge = syntheticSponge()
		reg.items[reg.sponge] = []string{recipe.WetSponge}
	}

	reg.loaded = time.Now()
	o.logger.Debug("Recipe registry loaded",
		logfields.Count(len(reg.keys)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return reg, nil
}

// syntheticSponge is the wet sponge drying recipe. Drying a wet sponge in a
// furnace with an empty bucket in the fuel slot fills the bucket, which no
// ordinary recipe can express.
func syntheticSponge() *recipe.Recipe {
	return &recipe.Recipe{
		Key:        SpongeKey,
		Result:     recipe.CraftResult{Item: recipe.Sponge, Count: 1},
		Experience: 0.15,
		Variant: &recipe.SmeltingRecipe{
			Type:        recipe.SmeltingTypeSmelting,
			Ingredient:  []recipe.Ingredient{recipe.Item(recipe.WetSponge)},
			CookingTime: 200,
		},
	}
}

func (reg *Registry) expand(r *recipe.Recipe) ([]string, error) {
	items, err := reg.tags.Expand(r.Ingredients())
	if err != nil {
		return nil, err
	}
	if t, ok := r.Variant.(*recipe.TransmuteRecipe); ok && !t.IncludeResult {
		items = slices.DeleteFunc(items, func(id string) bool { return id == r.Result.Item })
	}
	return items, nil
}

// Get returns the recipe stored under key.
func (reg *Registry) Get(key string) (*recipe.Recipe, bool) {
	r, ok := reg.recipes[key]
	return r, ok
}

// Contains reports whether key is loaded.
func (reg *Registry) Contains(key string) bool {
	_, ok := reg.recipes[key]
	return ok
}

// Keys returns recipe keys in load order.
func (reg *Registry) Keys() []string { return slices.Clone(reg.keys) }

// Len is the number of loaded recipes.
func (reg *Registry) Len() int { return len(reg.keys) }

// Flags is the feature flag set the registry was loaded with.
func (reg *Registry) Flags() *feature.Set { return reg.flags }

// Tags is the tag resolver the registry was loaded with.
func (reg *Registry) Tags() *tags.Resolver { return reg.tags }

// LoadedAt is when the load completed.
func (reg *Registry) LoadedAt() time.Time { return reg.loaded }

// Sponge returns the recipe listed with water bucket output searches.
func (reg *Registry) Sponge() *recipe.Recipe { return reg.sponge }

// IngredientItems is r's ingredient list with every tag expanded. A
// transmute recipe that does not include its result never lists the result
// item, even when a tag would bring it in.
func (reg *Registry) IngredientItems(r *recipe.Recipe) []string {
	if items, ok := reg.items[r]; ok {
		return slices.Clone(items)
	}
	items, err := reg.expand(r)
	if err != nil {
		return nil
	}
	return items
}

// Unreleased reports whether r is gated by a flag that has not shipped.
func (reg *Registry) Unreleased(r *recipe.Recipe) bool { return r.Unreleased(reg.flags) }

// EffectiveVersion is the version label to show for r: its own version,
// else the release version of its shipped feature flag, else the datapack
// version it was previewed in.
func (reg *Registry) EffectiveVersion(r *recipe.Recipe) string {
	if r.Version != "" {
		return r.Version
	}
	if r.FeatureFlag != "" {
		if v, ok := reg.flags.ReleaseVersion(r.FeatureFlag); ok {
			return v
		}
	}
	return r.DatapackVersion
}

// Stats summarises the registry contents.
type Stats struct {
	Recipes    int            `json:"recipes"`
	ByKind     map[string]int `json:"by_kind"`
	Removed    int            `json:"removed"`
	Unreleased int            `json:"unreleased"`
	Flags      []string       `json:"flags"`
}

// Stats counts recipes per kind.
func (reg *Registry) Stats() Stats {
	s := Stats{Recipes: len(reg.keys), ByKind: make(map[string]int), Flags: reg.flags.Layers()}
	for _, key := range reg.keys {
		r := reg.recipes[key]
		s.ByKind[r.Kind().String()]++
		if r.Removed() {
			s.Removed++
		}
		if reg.Unreleased(r) {
			s.Unreleased++
		}
	}
	return s
}

var errMissingRecipes = derrors.New(derrors.CategoryData, derrors.SeverityFatal, "recipe document is missing")

func isTagQuery(q string) bool { return strings.HasPrefix(strings.TrimSpace(q), "#") }
