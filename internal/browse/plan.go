// Package browse implements paginated navigation over recipe lists.
//
// Navigation is modelled as a State value and two pure functions: Plan
// computes the action table for the current page and Apply performs one
// action. Session wraps both for callers that want a mutable cursor.
package browse

import (
	"slices"
	"strconv"

	"git.home.luguber.info/inful/craftbook/internal/recipe"
)

// Catalog is the query surface navigation needs. *registry.Registry
// satisfies it.
type Catalog interface {
	Get(key string) (*recipe.Recipe, bool)
	Sort(list []*recipe.Recipe) []*recipe.Recipe
	IngredientItems(r *recipe.Recipe) []string
	SearchItemOutput(item string) []*recipe.Recipe
	SearchItemIngredient(item string) []*recipe.Recipe
}

// State is a cursor over a sorted recipe list. WindowStart indexes the
// current page's ingredient item list.
type State struct {
	List        []*recipe.Recipe
	Page        int
	WindowStart int
}

// Current returns the recipe under the cursor.
func (s State) Current() *recipe.Recipe { return s.List[s.Page] }

type targetKind int

const (
	targetNone targetKind = iota
	targetPage
	targetList
	targetWindow
)

// Action is one row of a page's action table.
type Action struct {
	Slot    Slot `json:"slot"`
	Enabled bool `json:"enabled"`
	// Description identifies what the action leads to, e.g. "page:next",
	// "uses:minecraft:stick" or "makes:minecraft:oak_planks".
	Description string `json:"description,omitempty"`

	kind   targetKind
	page   int
	list   []*recipe.Recipe
	window int
}

// Page is a rendered view of a State.
type Page struct {
	Recipe  *recipe.Recipe
	Index   int
	Total   int
	Actions []Action
}

// Action returns the table row for slot.
func (p Page) Action(slot Slot) Action {
	if !slot.Valid() || int(slot) >= len(p.Actions) {
		return Action{Slot: slot}
	}
	return p.Actions[slot]
}

// Plan computes the action table for the page under st's cursor. There is
// one action per slot, in slot order; slots with nothing to do are disabled.
func Plan(cat Catalog, st State) Page {
	r := st.Current()
	p := Page{Recipe: r, Index: st.Page, Total: len(st.List), Actions: make([]Action, slotCount)}
	for i := range p.Actions {
		p.Actions[i].Slot = Slot(i)
	}

	planPagination(&p, st)

	if users := cat.SearchItemIngredient(r.Result.Item); len(users) > 0 {
		p.Actions[SlotUses].toList("uses:"+r.Result.Item, users)
	}

	if table := recipe.LocalName(r.TableItem()); table != r.Key {
		if tr, ok := cat.Get(table); ok {
			p.Actions[SlotTable].toList("table:"+table, []*recipe.Recipe{tr})
		}
	}

	reserved := planReserved(&p, cat, r)

	if _, ok := r.Variant.(*recipe.StonecuttingRecipe); ok {
		return p
	}
	planWindow(&p, cat, st, reserved)
	return p
}

func planPagination(p *Page, st State) {
	last := len(st.List) - 1
	cur := st.Page
	targets := []struct {
		slot Slot
		page int
	}{
		{SlotFirst, 0},
		{SlotBack10, max(cur-10, 0)},
		{SlotPrev, max(cur-1, 0)},
		{SlotNext, min(cur+1, last)},
		{SlotForward10, min(cur+10, last)},
		{SlotLast, last},
	}
	for _, t := range targets {
		a := &p.Actions[t.slot]
		a.Description = "page:" + t.slot.String()
		if t.page != cur {
			a.Enabled = true
			a.kind = targetPage
			a.page = t.page
		}
	}
}

// planReserved fills the apparatus slots and returns the items they cover.
func planReserved(p *Page, cat Catalog, r *recipe.Recipe) []string {
	var covered []string
	next := SlotReserved1
	bind := func(desc string, item string, list []*recipe.Recipe) {
		if next > SlotReserved2 || len(list) == 0 {
			return
		}
		p.Actions[next].toList(desc, list)
		covered = append(covered, item)
		next++
	}

	switch v := r.Variant.(type) {
	case *recipe.SmeltingRecipe:
		for _, t := range []recipe.SmeltingType{recipe.SmeltingTypeBlasting, recipe.SmeltingTypeSmoking, recipe.SmeltingTypeCampfire} {
			if t == v.Type {
				continue
			}
			if _, ok := cat.Get(recipe.CompanionKey(r.Key, t)); !ok {
				continue
			}
			app := t.Apparatus()
			bind("uses:"+app, app, cat.SearchItemIngredient(app))
		}
	case *recipe.BrewingRecipe:
		bind("uses:"+recipe.BlazePowder, recipe.BlazePowder, cat.SearchItemIngredient(recipe.BlazePowder))
	case *recipe.StonecuttingRecipe:
		if items := cat.IngredientItems(r); len(items) > 0 {
			bind("makes:"+items[0], items[0], cat.SearchItemOutput(items[0]))
		}
	}
	return covered
}

// windowItems is the recipe's distinct ingredient items without its result
// and without the items bound to reserved slots.
func windowItems(cat Catalog, r *recipe.Recipe, reserved []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range cat.IngredientItems(r) {
		if seen[it] || it == r.Result.Item || slices.Contains(reserved, it) {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

func planWindow(p *Page, cat Catalog, st State, reserved []string) {
	items := windowItems(cat, st.Current(), reserved)
	slot := SlotIngredient1
	i := st.WindowStart
	for ; i < len(items) && slot < SlotMore; i++ {
		makers := cat.SearchItemOutput(items[i])
		if len(makers) == 0 {
			continue
		}
		p.Actions[slot].toList("makes:"+items[i], makers)
		slot++
	}

	if slot < SlotMore {
		return
	}
	for j := i; j < len(items); j++ {
		if len(cat.SearchItemOutput(items[j])) > 0 {
			a := &p.Actions[SlotMore]
			a.Enabled = true
			a.kind = targetWindow
			a.window = i
			a.Description = "more:" + strconv.Itoa(i)
			return
		}
	}
}

func (a *Action) toList(desc string, list []*recipe.Recipe) {
	a.Enabled = true
	a.Description = desc
	a.kind = targetList
	a.list = list
}

// Apply performs a and returns the resulting state. Disabled actions leave
// st unchanged.
func Apply(cat Catalog, st State, a Action) State {
	if !a.Enabled {
		return st
	}
	switch a.kind {
	case targetPage:
		return State{List: st.List, Page: a.page}
	case targetList:
		return State{List: cat.Sort(a.list)}
	case targetWindow:
		st.WindowStart = a.window
		return st
	default:
		return st
	}
}
