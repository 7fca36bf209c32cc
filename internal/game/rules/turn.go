package rules

import (
	"fmt"
)

// Phase is one step of a Commander turn, in turn order.
type Phase int

const (
	PhaseUntap Phase = iota
	PhaseUpkeep
	PhaseDraw
	PhaseMainPrecombat
	PhaseBeginCombat
	PhaseDeclareAttackers
	PhaseDeclareBlockers
	PhaseDamageAssignmentOrder
	PhaseCombatDamage
	PhaseEndCombat
	PhaseMainPostcombat
	PhaseEndStep
	PhaseCleanup

	phaseCount
)

var phaseNames = map[Phase]string{
	PhaseUntap:                 "UNTAP",
	PhaseUpkeep:                "UPKEEP",
	PhaseDraw:                  "DRAW",
	PhaseMainPrecombat:         "MAIN_PRECOMBAT",
	PhaseBeginCombat:           "BEGIN_COMBAT",
	PhaseDeclareAttackers:      "DECLARE_ATTACKERS",
	PhaseDeclareBlockers:       "DECLARE_BLOCKERS",
	PhaseDamageAssignmentOrder: "DAMAGE_ASSIGNMENT_ORDER",
	PhaseCombatDamage:          "COMBAT_DAMAGE",
	PhaseEndCombat:             "END_COMBAT",
	PhaseMainPostcombat:        "MAIN_POSTCOMBAT",
	PhaseEndStep:               "END_STEP",
	PhaseCleanup:               "CLEANUP",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// Next returns the following phase, wrapping from CLEANUP to UNTAP.
// Wrapping does not start a new turn.
func (p Phase) Next() Phase {
	return (p + 1) % phaseCount
}

// IsMain reports whether p is one of the two main phases.
func (p Phase) IsMain() bool {
	return p == PhaseMainPrecombat || p == PhaseMainPostcombat
}

// IsCombat reports whether p belongs to the combat phase.
func (p Phase) IsCombat() bool {
	return p >= PhaseBeginCombat && p <= PhaseEndCombat
}

// Phases returns every phase in turn order.
func Phases() []Phase {
	out := make([]Phase, 0, phaseCount)
	for p := PhaseUntap; p < phaseCount; p++ {
		out = append(out, p)
	}
	return out
}

// NextAlive returns the first seat after current, searching forward cyclically,
// whose player has not lost. It probes at most seats times; when nobody else is
// alive it returns current.
func NextAlive(current, seats int, hasLost func(seat int) bool) int {
	if seats <= 0 {
		return current
	}
	for i := 1; i <= seats; i++ {
		next := (current + i) % seats
		if next == current {
			break
		}
		if !hasLost(next) {
			return next
		}
	}
	return current
}

// TurnManager tracks the active seat, turn number and current phase.
type TurnManager struct {
	seats      int
	active     int
	turnNumber int
	phase      Phase
}

// NewTurnManager creates a turn manager at turn 1, untap step, with first as
// the active seat.
func NewTurnManager(seats, first int) *TurnManager {
	return &TurnManager{
		seats:      seats,
		active:     first,
		turnNumber: 1,
		phase:      PhaseUntap,
	}
}

// Phase returns the phase currently in progress.
func (tm *TurnManager) Phase() Phase {
	return tm.phase
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// ActiveSeat returns the seat whose turn it is.
func (tm *TurnManager) ActiveSeat() int {
	return tm.active
}

// SetActiveSeat forces the active seat.
func (tm *TurnManager) SetActiveSeat(seat int) {
	tm.active = seat
}

// AdvancePhase moves to the next phase. After CLEANUP it wraps to UNTAP
// without touching the active seat or the turn number.
func (tm *TurnManager) AdvancePhase() Phase {
	tm.phase = tm.phase.Next()
	return tm.phase
}

// StartNewTurn rotates the active seat to the next living player, increments
// the turn number and resets the phase to UNTAP.
func (tm *TurnManager) StartNewTurn(hasLost func(seat int) bool) int {
	tm.active = NextAlive(tm.active, tm.seats, hasLost)
	tm.turnNumber++
	tm.phase = PhaseUntap
	return tm.active
}
