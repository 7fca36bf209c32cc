package mana

// ManaType represents a type of mana.
type ManaType string

const (
	ManaWhite     ManaType = "WHITE"
	ManaBlue      ManaType = "BLUE"
	ManaBlack     ManaType = "BLACK"
	ManaRed       ManaType = "RED"
	ManaGreen     ManaType = "GREEN"
	ManaColorless ManaType = "COLORLESS"
	ManaGeneric   ManaType = "GENERIC" // cost-only symbol, payable with any type
)

// Colors lists the five colors in WUBRG order.
var Colors = []ManaType{ManaWhite, ManaBlue, ManaBlack, ManaRed, ManaGreen}

// PoolTypes lists every mana type a pool can hold.
var PoolTypes = []ManaType{ManaWhite, ManaBlue, ManaBlack, ManaRed, ManaGreen, ManaColorless}

// IsColor reports whether t is one of the five colors.
func (t ManaType) IsColor() bool {
	switch t {
	case ManaWhite, ManaBlue, ManaBlack, ManaRed, ManaGreen:
		return true
	}
	return false
}

// Symbol returns the single-letter cost symbol for t.
func (t ManaType) Symbol() string {
	switch t {
	case ManaWhite:
		return "W"
	case ManaBlue:
		return "U"
	case ManaBlack:
		return "B"
	case ManaRed:
		return "R"
	case ManaGreen:
		return "G"
	case ManaColorless:
		return "C"
	}
	return ""
}

// ManaPool holds the mana a player has available. A game owns its pools and
// mutates them from a single goroutine, so the pool carries no lock.
type ManaPool struct {
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

// NewManaPool creates a new empty mana pool.
func NewManaPool() *ManaPool {
	return &ManaPool{}
}

// PoolOf builds a pool from a type → amount mapping. Generic entries are ignored.
func PoolOf(amounts map[ManaType]int) *ManaPool {
	mp := NewManaPool()
	for t, n := range amounts {
		mp.Add(t, n)
	}
	return mp
}

func (mp *ManaPool) slot(manaType ManaType) *int {
	switch manaType {
	case ManaWhite:
		return &mp.White
	case ManaBlue:
		return &mp.Blue
	case ManaBlack:
		return &mp.Black
	case ManaRed:
		return &mp.Red
	case ManaGreen:
		return &mp.Green
	case ManaColorless:
		return &mp.Colorless
	}
	return nil
}

// Add adds mana to the pool. Non-positive amounts and generic are ignored.
func (mp *ManaPool) Add(manaType ManaType, amount int) {
	if amount <= 0 {
		return
	}
	if s := mp.slot(manaType); s != nil {
		*s += amount
	}
}

// Get returns the amount of a specific mana type.
func (mp *ManaPool) Get(manaType ManaType) int {
	if s := mp.slot(manaType); s != nil {
		return *s
	}
	return 0
}

// Spend removes mana from the pool.
// Returns false and leaves the pool untouched if there is not enough.
func (mp *ManaPool) Spend(manaType ManaType, amount int) bool {
	if amount <= 0 {
		return true
	}
	s := mp.slot(manaType)
	if s == nil || *s < amount {
		return false
	}
	*s -= amount
	return true
}

// subtract removes amount without checking availability. Used by Pay, whose
// behaviour on an unaffordable cost is undefined.
func (mp *ManaPool) subtract(manaType ManaType, amount int) {
	if s := mp.slot(manaType); s != nil {
		*s -= amount
	}
}

// Empty empties the pool.
func (mp *ManaPool) Empty() {
	*mp = ManaPool{}
}

// GetTotalMana returns the total mana count across all types.
func (mp *ManaPool) GetTotalMana() int {
	return mp.White + mp.Blue + mp.Black + mp.Red + mp.Green + mp.Colorless
}

// Copy creates a copy of the mana pool.
func (mp *ManaPool) Copy() *ManaPool {
	c := *mp
	return &c
}

// Amounts returns the non-zero entries of the pool.
func (mp *ManaPool) Amounts() map[ManaType]int {
	out := make(map[ManaType]int)
	for _, t := range PoolTypes {
		if n := mp.Get(t); n != 0 {
			out[t] = n
		}
	}
	return out
}
