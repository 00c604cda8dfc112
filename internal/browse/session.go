package browse

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/craftbook/internal/recipe"
)

var (
	// ErrEmptyList is returned when a session is started without recipes.
	ErrEmptyList = errors.New("browse: recipe list is empty")
	// ErrPageOutOfRange is returned for a start page outside the list.
	ErrPageOutOfRange = errors.New("browse: page out of range")
)

// Session is a mutable cursor over a recipe list. A Session is not safe for
// concurrent use; owners serialise access.
type Session struct {
	cat   Catalog
	state State
}

// New sorts list and positions the cursor on page.
func New(cat Catalog, list []*recipe.Recipe, page int) (*Session, error) {
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	if page < 0 || page >= len(list) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrPageOutOfRange, page, len(list))
	}
	return &Session{cat: cat, state: State{List: cat.Sort(list), Page: page}}, nil
}

// Catalog returns the catalog the session queries.
func (s *Session) Catalog() Catalog { return s.cat }

// State returns a snapshot of the cursor.
func (s *Session) State() State { return s.state }

// CurrentPage returns the recipe under the cursor.
func (s *Session) CurrentPage() *recipe.Recipe { return s.state.Current() }

// Render computes the current page and its action table.
func (s *Session) Render() Page { return Plan(s.cat, s.state) }

// AvailableActions lists every slot with whether it is enabled and what it
// leads to.
func (s *Session) AvailableActions() []Action { return s.Render().Actions }

// Invoke performs the action bound to slot on the current page. Unknown
// and disabled slots do nothing. It reports whether the state changed.
func (s *Session) Invoke(slot Slot) bool {
	if !slot.Valid() {
		return false
	}
	a := s.Render().Action(slot)
	if !a.Enabled {
		return false
	}
	s.state = Apply(s.cat, s.state, a)
	return true
}
