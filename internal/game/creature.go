package game

import (
	"fmt"
)

// Creature is the combat state carried by creature cards.
type Creature struct {
	BasePower     int
	BaseToughness int
	Power         int
	Toughness     int

	DamageTaken   int
	IsDead        bool
	SummoningSick bool
	CannotBlock   bool

	Attacking bool
	BlockedBy []*Card
	Blocking  *Card

	// wasBlocked stays set after every blocker has left combat.
	wasBlocked bool

	// DamageAssignmentOrder is the chosen permutation of BlockedBy;
	// DamageAssignment[i] is the damage assigned to DamageAssignmentOrder[i].
	DamageAssignmentOrder []*Card
	DamageToAssign        int
	DamageAssignment      []int
}

func newCreatureState(power, toughness int) *Creature {
	return &Creature{
		BasePower:     power,
		BaseToughness: toughness,
		Power:         power,
		Toughness:     toughness,
		SummoningSick: true,
	}
}

// TakeDamage marks damage. The creature is flagged dead once the damage
// reaches its toughness; removal happens during state-based actions.
func (cr *Creature) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	cr.DamageTaken += amount
	if cr.DamageTaken >= cr.Toughness {
		cr.IsDead = true
	}
}

// LethalDamage returns the damage still needed to destroy the creature.
func (cr *Creature) LethalDamage() int {
	return max(0, cr.Toughness-cr.DamageTaken)
}

// ClearDamage removes marked damage at cleanup.
func (cr *Creature) ClearDamage() {
	cr.DamageTaken = 0
	cr.IsDead = cr.Toughness <= 0
}

// SetDamageAssignmentOrder picks the index-th of the n! lexicographic orders
// of BlockedBy, resetting DamageToAssign to Power and the allocation to zeros.
func (cr *Creature) SetDamageAssignmentOrder(index int) error {
	perm, err := NthPermutation(len(cr.BlockedBy), index)
	if err != nil {
		return err
	}
	order := make([]*Card, len(perm))
	for i, pos := range perm {
		order[i] = cr.BlockedBy[pos]
	}
	cr.DamageAssignmentOrder = order
	cr.DamageToAssign = cr.Power
	cr.DamageAssignment = make([]int, len(order))
	return nil
}

// AssignDamage adds amount to the blocker at position in the chosen order.
// It only keeps books; legality is checked by ValidateDamageAssignment.
func (cr *Creature) AssignDamage(position, amount int) {
	cr.DamageAssignment[position] += amount
	cr.DamageToAssign -= amount
}

// AutoAssign assigns lethal damage to each blocker in order and puts whatever
// is left on the last blocker.
func (cr *Creature) AutoAssign() {
	last := len(cr.DamageAssignmentOrder) - 1
	for i, blocker := range cr.DamageAssignmentOrder {
		if cr.DamageToAssign <= 0 {
			return
		}
		amount := cr.DamageToAssign
		if i < last {
			amount = min(amount, blocker.Creature.LethalDamage())
		}
		cr.AssignDamage(i, amount)
	}
}

// ValidateDamageAssignment checks that all damage was assigned, none of it
// negative, and that no blocker received damage while an earlier blocker in
// the order had less than lethal.
func (cr *Creature) ValidateDamageAssignment() error {
	if cr.DamageAssignmentOrder == nil || len(cr.DamageAssignment) != len(cr.DamageAssignmentOrder) {
		return fmt.Errorf("%w: no damage assignment order chosen", ErrIllegalDamageAssignment)
	}
	if cr.DamageToAssign != 0 && cr.Power > 0 {
		return fmt.Errorf("%w: %d damage left unassigned", ErrIllegalDamageAssignment, cr.DamageToAssign)
	}
	for i, amount := range cr.DamageAssignment {
		if amount < 0 {
			return fmt.Errorf("%w: negative damage to blocker %d", ErrIllegalDamageAssignment, i)
		}
	}
	for i := 0; i < len(cr.DamageAssignment)-1; i++ {
		blocker := cr.DamageAssignmentOrder[i]
		if cr.DamageAssignment[i] >= blocker.Creature.LethalDamage() {
			continue
		}
		for j := i + 1; j < len(cr.DamageAssignment); j++ {
			if cr.DamageAssignment[j] > 0 {
				return fmt.Errorf("%w: %s assigned damage before %s received lethal",
					ErrIllegalDamageAssignment, cr.DamageAssignmentOrder[j].Name, blocker.Name)
			}
		}
	}
	return nil
}

func (cr *Creature) clearCombat() {
	cr.Attacking = false
	cr.wasBlocked = false
	cr.BlockedBy = nil
	cr.Blocking = nil
	cr.DamageAssignmentOrder = nil
	cr.DamageToAssign = 0
	cr.DamageAssignment = nil
}
