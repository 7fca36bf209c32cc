package game

import (
	"errors"
	"testing"

	"github.com/magefree/commander-go/internal/game/mana"
	"github.com/magefree/commander-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	g := newTestGame(t, 3)
	require.NoError(t, g.Start(false))

	assert.Equal(t, 1, g.TurnNumber())
	assert.Equal(t, 0, g.ActiveSeat())
	assert.Equal(t, rules.PhaseUntap, g.Phase())
	for _, p := range g.Players {
		assert.Len(t, p.Hand, 7)
		assert.Len(t, p.Deck, 13)
	}
	assert.True(t, g.Players[0].CanPlayLand)

	assert.ErrorIs(t, g.Start(false), ErrGameStarted)
}

func TestStartNewTurnSkipsEliminatedPlayers(t *testing.T) {
	g := newTestGame(t, 4)
	require.NoError(t, g.Start(false))
	g.Players[1].HasLost = true
	g.Players[3].HasLost = true

	assert.Equal(t, 2, g.StartNewTurn(false))
	assert.Equal(t, 2, g.TurnNumber())
	assert.Equal(t, rules.PhaseUntap, g.Phase())
	assert.Equal(t, 0, g.StartNewTurn(false))
	assert.Equal(t, 2, g.StartNewTurn(false))
	assert.Equal(t, 4, g.TurnNumber())
}

func TestAdvancePhaseRunsTurnBasedActions(t *testing.T) {
	g := newTestGame(t, 2)
	require.NoError(t, g.Start(false))

	phase, err := g.AdvancePhase(false)
	require.NoError(t, err)
	assert.Equal(t, rules.PhaseUpkeep, phase)

	phase, err = g.AdvancePhase(false)
	require.NoError(t, err)
	assert.Equal(t, rules.PhaseDraw, phase)
	assert.Len(t, g.Players[0].Hand, 7, "first player skips the first draw")

	g.Players[0].AddMana(mana.ManaGreen, 2)
	for g.Phase() != rules.PhaseCleanup {
		_, err := g.AdvancePhase(false)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, g.Players[0].Pool.GetTotalMana(), "pools empty at cleanup")

	phase, err = g.AdvancePhase(false)
	require.NoError(t, err)
	assert.Equal(t, rules.PhaseUntap, phase)
	assert.Equal(t, 1, g.TurnNumber(), "wrapping does not pass the turn")

	g.StartNewTurn(false)
	for g.Phase() != rules.PhaseDraw {
		_, err := g.AdvancePhase(false)
		require.NoError(t, err)
	}
	assert.Len(t, g.Players[1].Hand, 8)
}

func TestAdvancePhaseDealsCombatDamage(t *testing.T) {
	g := newTestGame(t, 2)
	require.NoError(t, g.Start(false))
	attacker := ready(g, 0, vanilla("Attacker", "{2}", 3, 3))
	b1 := ready(g, 1, vanilla("B1", "{1}", 1, 1))
	b2 := ready(g, 1, vanilla("B2", "{1}", 1, 1))

	for g.Phase() != rules.PhaseDeclareAttackers {
		_, err := g.AdvancePhase(false)
		require.NoError(t, err)
	}
	require.True(t, g.BeginCombat(1))
	require.True(t, g.DeclareAttacker(attacker, false))
	require.True(t, g.DeclareBlocker(b1, attacker, false))
	require.True(t, g.DeclareBlocker(b2, attacker, false))

	for g.Phase() != rules.PhaseDamageAssignmentOrder {
		_, err := g.AdvancePhase(false)
		require.NoError(t, err)
	}
	require.NoError(t, g.SetDamageAssignmentOrder(attacker, 1))
	attacker.Creature.AssignDamage(1, 3)

	_, err := g.AdvancePhase(false)
	require.True(t, errors.Is(err, ErrIllegalDamageAssignment))
	assert.Equal(t, rules.PhaseDamageAssignmentOrder, g.Phase())

	require.NoError(t, g.SetDamageAssignmentOrder(attacker, 1))
	attacker.Creature.AssignDamage(0, 1)
	attacker.Creature.AssignDamage(1, 2)
	phase, err := g.AdvancePhase(false)
	require.NoError(t, err)
	assert.Equal(t, rules.PhaseCombatDamage, phase)
	assert.False(t, g.OnBattlefield(b1))
	assert.False(t, g.OnBattlefield(b2))
	assert.Equal(t, 2, attacker.Creature.DamageTaken)

	phase, err = g.AdvancePhase(false)
	require.NoError(t, err)
	assert.Equal(t, rules.PhaseEndCombat, phase)
	assert.False(t, g.InCombat())

	for g.Phase() != rules.PhaseCleanup {
		_, err := g.AdvancePhase(false)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, attacker.Creature.DamageTaken, "damage wears off at cleanup")
}

func TestUntapStep(t *testing.T) {
	g := newTestGame(t, 2)
	require.NoError(t, g.Start(false))
	land := forest()
	g.PutOntoBattlefield(1, land)
	land.Tapped = true
	bear := vanilla("Bear", "{1}{G}", 2, 2)
	g.PutOntoBattlefield(1, bear)

	g.StartNewTurn(false)
	assert.False(t, land.Tapped)
	assert.False(t, bear.Creature.SummoningSick)
	assert.True(t, g.Players[1].CanPlayLand)
}

func TestNewGameRequiresTwoPlayers(t *testing.T) {
	_, err := NewGame([]*Player{NewPlayer("Solo", nil)})
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestNewGameDeckValidation(t *testing.T) {
	green := vanilla("Elf Commander", "{G}", 1, 1)
	deck := append(forestDeck(3), vanilla("Counterspell Bird", "{U}", 1, 1), NewLand("Island", []string{"Basic", "Land"}, []string{"Island"}))
	players := []*Player{
		NewPlayer("Alice", deck, green),
		NewPlayer("Bob", forestDeck(3), vanilla("Other Elf", "{G}", 1, 1)),
	}

	_, err := NewGame(players, WithDeckValidation())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Deck Validation Failed")
	assert.Contains(t, err.Error(), "Counterspell Bird")
	assert.Contains(t, err.Error(), "Island")
	assert.ErrorIs(t, err, rules.ErrDeckValidation)

	var dve *rules.DeckValidationError
	require.ErrorAs(t, err, &dve)
	assert.ElementsMatch(t, []string{"Counterspell Bird", "Island"}, dve.CardNames())

	_, err = NewGame(players)
	assert.NoError(t, err, "validation is opt-in")
}
