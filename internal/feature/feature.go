// Package feature describes experimental feature flags: their release
// order, whether they have shipped, and the version they shipped in.
package feature

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/craftbook/internal/source"
)

// Vanilla is the implicit base layer. It is always first and always released.
const Vanilla = "vanilla"

// Flag is one experimental gate.
type Flag struct {
	Name     string `json:"name"`
	Released bool   `json:"released"`
	// Version is the game version the flag was released in, if known.
	Version string `json:"version,omitempty"`
}

// Set is an ordered collection of flags with Vanilla in front.
type Set struct {
	flags []Flag
	index map[string]int
}

// Default returns a set holding only the vanilla layer.
func Default() *Set {
	s, _ := New(nil)
	return s
}

// New builds a set from flags in release order. Vanilla is prepended and
// must not be listed.
func New(flags []Flag) (*Set, error) {
	s := &Set{
		flags: make([]Flag, 0, len(flags)+1),
		index: make(map[string]int, len(flags)+1),
	}
	s.add(Flag{Name: Vanilla, Released: true})
	for _, f := range flags {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			return nil, fmt.Errorf("feature flag without a name")
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("feature flag %q declared twice", f.Name)
		}
		s.add(f)
	}
	return s, nil
}

func (s *Set) add(f Flag) {
	s.index[f.Name] = len(s.flags)
	s.flags = append(s.flags, f)
}

// Parse reads flag definitions from a document list. Entries are either a
// bare name (an unreleased flag) or an object with name, released and
// version fields.
func Parse(list []any) (*Set, error) {
	flags := make([]Flag, 0, len(list))
	for i, e := range list {
		switch t := e.(type) {
		case string:
			flags = append(flags, Flag{Name: t})
		case *source.Map:
			var f Flag
			var ok bool
			var err error
			if f.Name, ok, err = t.String("name"); err != nil {
				return nil, fmt.Errorf("features[%d]: %w", i, err)
			} else if !ok {
				return nil, fmt.Errorf("features[%d]: missing name", i)
			}
			if f.Released, _, err = t.Bool("released"); err != nil {
				return nil, fmt.Errorf("features[%d]: %w", i, err)
			}
			if f.Version, _, err = t.String("version"); err != nil {
				return nil, fmt.Errorf("features[%d]: %w", i, err)
			}
			flags = append(flags, f)
		default:
			return nil, fmt.Errorf("features[%d]: expected string or object, got %s", i, source.TypeName(e))
		}
	}
	return New(flags)
}

// Layers returns flag names in release order, Vanilla first.
func (s *Set) Layers() []string {
	out := make([]string, len(s.flags))
	for i, f := range s.flags {
		out[i] = f.Name
	}
	return out
}

// Flags returns a copy of the flags in release order.
func (s *Set) Flags() []Flag {
	return append([]Flag(nil), s.flags...)
}

// Has reports whether name is a declared flag.
func (s *Set) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Order is the release position of name. The empty name is Vanilla. Unknown
// flags sort after every declared one.
func (s *Set) Order(name string) int {
	if name == "" {
		return 0
	}
	if i, ok := s.index[name]; ok {
		return i
	}
	return len(s.flags)
}

// IsReleased reports whether recipes gated by name are generally available.
// Unknown flags are treated as unreleased.
func (s *Set) IsReleased(name string) bool {
	if name == "" {
		return true
	}
	i, ok := s.index[name]
	return ok && s.flags[i].Released
}

// ReleaseVersion returns the version a released flag shipped in.
func (s *Set) ReleaseVersion(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok || !s.flags[i].Released || s.flags[i].Version == "" {
		return "", false
	}
	return s.flags[i].Version, true
}
