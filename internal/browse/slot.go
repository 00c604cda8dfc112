package browse

import "fmt"

// Slot identifies one navigation control on a rendered page.
type Slot int

const (
	SlotFirst Slot = iota
	SlotBack10
	SlotPrev
	SlotNext
	SlotForward10
	SlotLast
	SlotUses
	SlotTable
	SlotReserved1
	SlotReserved2
	SlotIngredient1
	SlotIngredient2
	SlotIngredient3
	SlotIngredient4
	SlotIngredient5
	SlotIngredient6
	SlotIngredient7
	SlotIngredient8
	SlotIngredient9
	SlotMore

	slotCount
)

// WindowSize is the number of ingredient slots on a page.
const WindowSize = int(SlotMore - SlotIngredient1)

var slotNames = [slotCount]string{
	SlotFirst:       "first",
	SlotBack10:      "back10",
	SlotPrev:        "prev",
	SlotNext:        "next",
	SlotForward10:   "forward10",
	SlotLast:        "last",
	SlotUses:        "uses",
	SlotTable:       "table",
	SlotReserved1:   "reserved1",
	SlotReserved2:   "reserved2",
	SlotIngredient1: "ingredient1",
	SlotIngredient2: "ingredient2",
	SlotIngredient3: "ingredient3",
	SlotIngredient4: "ingredient4",
	SlotIngredient5: "ingredient5",
	SlotIngredient6: "ingredient6",
	SlotIngredient7: "ingredient7",
	SlotIngredient8: "ingredient8",
	SlotIngredient9: "ingredient9",
	SlotMore:        "more",
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool { return s >= 0 && s < slotCount }

// MarshalText encodes the slot by name.
func (s Slot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid slot %d", int(s))
	}
	return []byte(slotNames[s]), nil
}

// UnmarshalText decodes a slot name.
func (s *Slot) UnmarshalText(b []byte) error {
	v, ok := ParseSlot(string(b))
	if !ok {
		return fmt.Errorf("unknown slot %q", b)
	}
	*s = v
	return nil
}

// ParseSlot looks a slot up by name.
func ParseSlot(name string) (Slot, bool) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), true
		}
	}
	return 0, false
}

// Slots lists every slot in display order.
func Slots() []Slot {
	out := make([]Slot, slotCount)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}
