package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealCombatDamageToOpponent_CommanderLedgerAccumulates(t *testing.T) {
	g := newTestGame(t, 4)
	cmd := ready(g, 0, vanilla("Red Commander", "{2}{R}", 5, 5))
	cmd.IsCommander = true
	require.True(t, g.BeginCombat(2))

	for i := 1; i <= 3; i++ {
		require.True(t, g.DealCombatDamageToOpponent(cmd, false))
		assert.Equal(t, 5*i, g.CommanderDamageFrom(cmd, 2))
	}
	assert.Equal(t, 25, g.Players[2].Life)
	assert.Equal(t, 0, g.CommanderDamageFrom(cmd, 1), "other victims are tracked separately")
}

func TestDealCombatDamageToOpponent_NonCommanderSkipsLedger(t *testing.T) {
	g := newTestGame(t, 2)
	bear := ready(g, 0, vanilla("Bear", "{1}{G}", 2, 2))
	require.True(t, g.BeginCombat(1))

	g.DealCombatDamageToOpponent(bear, false)
	assert.Equal(t, 38, g.Players[1].Life)
	assert.Empty(t, g.CommanderDamage)
}

func TestDealCombatDamageToOpponent_OutsideCombat(t *testing.T) {
	g := newTestGame(t, 2)
	bear := ready(g, 0, vanilla("Bear", "{1}{G}", 2, 2))
	assert.False(t, g.DealCombatDamageToOpponent(bear, false))
	assert.Equal(t, 40, g.Players[1].Life)
}

func TestCommanderDamageThreshold(t *testing.T) {
	g := newTestGame(t, 4)
	cmd := ready(g, 0, vanilla("Red Commander", "{2}{R}", 10, 10))
	cmd.IsCommander = true
	require.True(t, g.BeginCombat(1))

	g.DealCombatDamageToOpponent(cmd, false)
	g.DealCombatDamageToOpponent(cmd, false)
	g.CheckStateBasedActions(false)
	assert.Equal(t, 20, g.CommanderDamageFrom(cmd, 1))
	assert.False(t, g.Players[1].HasLost, "20 commander damage is not lethal")

	cmd.Creature.Power = 1
	g.DealCombatDamageToOpponent(cmd, false)
	g.CheckStateBasedActions(false)
	assert.Equal(t, 21, g.CommanderDamageFrom(cmd, 1))
	assert.True(t, g.Players[1].HasLost)
	assert.Equal(t, LossCommanderDamage, g.Players[1].LossReason)
	assert.Equal(t, 19, g.Players[1].Life)
}

func TestCommanderDamageIsPerCommander(t *testing.T) {
	g := newTestGame(t, 3)
	a := ready(g, 0, vanilla("Partner A", "{R}", 11, 11))
	b := ready(g, 0, vanilla("Partner B", "{W}", 11, 11))
	a.IsCommander, b.IsCommander = true, true
	require.True(t, g.BeginCombat(1))

	g.DealCombatDamageToOpponent(a, false)
	g.DealCombatDamageToOpponent(b, false)
	g.CheckStateBasedActions(false)

	assert.False(t, g.Players[1].HasLost, "damage from different commanders does not add up")
	assert.Equal(t, 18, g.Players[1].Life)
}

func TestDeclareAttackersAndBlockers(t *testing.T) {
	g := newTestGame(t, 3)
	attacker := ready(g, 0, vanilla("Attacker", "{3}", 3, 3))
	fresh := vanilla("Fresh", "{1}", 1, 1)
	g.PutOntoBattlefield(0, fresh)
	blocker := ready(g, 1, vanilla("Blocker", "{1}", 1, 1))
	wall := ready(g, 1, vanilla("Cannot Block", "{1}", 1, 1))
	wall.Creature.CannotBlock = true
	bystander := ready(g, 2, vanilla("Bystander", "{1}", 1, 1))

	assert.False(t, g.DeclareAttacker(attacker, false), "no combat yet")
	assert.False(t, g.BeginCombat(0), "cannot attack yourself")
	require.True(t, g.BeginCombat(1))

	assert.False(t, g.DeclareAttacker(fresh, false), "summoning sick")
	assert.False(t, g.DeclareAttacker(blocker, false), "not the active player's creature")
	require.True(t, g.DeclareAttacker(attacker, false))
	assert.True(t, attacker.Tapped)
	assert.False(t, g.DeclareAttacker(attacker, false), "already attacking")

	assert.False(t, g.DeclareBlocker(wall, attacker, false))
	assert.False(t, g.DeclareBlocker(bystander, attacker, false), "not the defending player")
	require.True(t, g.DeclareBlocker(blocker, attacker, false))
	assert.False(t, g.DeclareBlocker(blocker, attacker, false), "already blocking")
	assert.Equal(t, []*Card{blocker}, attacker.Creature.BlockedBy)
}

func TestResolveCombatDamage_ChosenOrder(t *testing.T) {
	g := newTestGame(t, 2)
	attacker := ready(g, 0, vanilla("Attacker", "{3}", 5, 5))
	b1 := ready(g, 1, vanilla("Blocker 1", "{1}", 2, 2))
	b2 := ready(g, 1, vanilla("Blocker 2", "{1}", 2, 2))
	b3 := ready(g, 1, vanilla("Blocker 3", "{1}", 2, 2))

	require.True(t, g.BeginCombat(1))
	require.True(t, g.DeclareAttacker(attacker, false))
	for _, b := range []*Card{b1, b2, b3} {
		require.True(t, g.DeclareBlocker(b, attacker, false))
	}

	require.NoError(t, g.SetDamageAssignmentOrder(attacker, 5))
	assert.Equal(t, []*Card{b3, b2, b1}, attacker.Creature.DamageAssignmentOrder)
	attacker.Creature.AssignDamage(0, 2)
	attacker.Creature.AssignDamage(1, 2)
	attacker.Creature.AssignDamage(2, 1)

	require.NoError(t, g.ResolveCombatDamage(false))

	assert.False(t, g.OnBattlefield(b3))
	assert.False(t, g.OnBattlefield(b2))
	assert.True(t, g.OnBattlefield(b1))
	assert.Equal(t, 1, b1.Creature.DamageTaken)
	assert.False(t, g.OnBattlefield(attacker), "three blockers deal 6 to a 5/5")
	assert.Equal(t, 40, g.Players[1].Life, "blocked attacker deals no damage to the player")
}

func TestDeclareBlocker_LateBlockerResetsOrder(t *testing.T) {
	g := newTestGame(t, 2)
	giant := ready(g, 0, vanilla("Giant", "{5}", 6, 6))
	b1 := ready(g, 1, vanilla("Blocker 1", "{1}", 1, 2))
	b2 := ready(g, 1, vanilla("Blocker 2", "{1}", 1, 10))

	require.True(t, g.BeginCombat(1))
	require.True(t, g.DeclareAttacker(giant, false))
	require.True(t, g.DeclareBlocker(b1, giant, false))
	require.NoError(t, g.SetDamageAssignmentOrder(giant, 0))
	require.Len(t, giant.Creature.DamageAssignmentOrder, 1)

	require.True(t, g.DeclareBlocker(b2, giant, false))
	assert.Nil(t, giant.Creature.DamageAssignmentOrder, "a new blocker discards the chosen order")
	assert.Nil(t, giant.Creature.DamageAssignment)

	require.NoError(t, g.SetDamageAssignmentOrder(giant, 0))
	assert.Equal(t, []*Card{b1, b2}, giant.Creature.DamageAssignmentOrder)

	require.NoError(t, g.ResolveCombatDamage(false))
	assert.False(t, g.OnBattlefield(b1), "lethal goes to the first blocker")
	assert.True(t, g.OnBattlefield(b2))
	assert.Equal(t, 4, b2.Creature.DamageTaken, "the late blocker takes the rest")
}

func TestDeclareAfterCombatDamage(t *testing.T) {
	g := newTestGame(t, 2)
	first := ready(g, 0, vanilla("First", "{2}", 2, 2))
	late := ready(g, 0, vanilla("Late", "{2}", 2, 2))
	blocker := ready(g, 1, vanilla("Blocker", "{1}", 1, 1))

	require.True(t, g.BeginCombat(1))
	require.True(t, g.DeclareAttacker(first, false))
	require.NoError(t, g.ResolveCombatDamage(false))
	require.Equal(t, 38, g.Players[1].Life)

	assert.False(t, g.DeclareAttacker(late, false))
	assert.False(t, late.Tapped, "a refused attacker stays untapped")
	assert.False(t, g.DeclareBlocker(blocker, first, false))
	assert.Equal(t, []*Card{first}, g.Attackers())
}

func TestResolveCombatDamage_RejectsSkippedLethal(t *testing.T) {
	g := newTestGame(t, 2)
	attacker := ready(g, 0, vanilla("Attacker", "{3}", 5, 5))
	b1 := ready(g, 1, vanilla("Blocker 1", "{1}", 2, 2))
	b2 := ready(g, 1, vanilla("Blocker 2", "{1}", 2, 2))

	require.True(t, g.BeginCombat(1))
	require.True(t, g.DeclareAttacker(attacker, false))
	require.True(t, g.DeclareBlocker(b1, attacker, false))
	require.True(t, g.DeclareBlocker(b2, attacker, false))
	require.NoError(t, g.SetDamageAssignmentOrder(attacker, 0))
	attacker.Creature.AssignDamage(0, 1)
	attacker.Creature.AssignDamage(1, 4)

	err := g.ResolveCombatDamage(false)
	assert.ErrorIs(t, err, ErrIllegalDamageAssignment)
	assert.Equal(t, 0, b1.Creature.DamageTaken, "nothing is dealt on an illegal assignment")
	assert.Equal(t, 0, b2.Creature.DamageTaken)
	assert.Equal(t, 0, attacker.Creature.DamageTaken)
}

func TestResolveCombatDamage_DefaultsAndUnblocked(t *testing.T) {
	g := newTestGame(t, 2)
	big := ready(g, 0, vanilla("Big", "{4}", 5, 5))
	small := ready(g, 0, vanilla("Small", "{1}", 3, 3))
	b1 := ready(g, 1, vanilla("Blocker 1", "{1}", 2, 2))
	b2 := ready(g, 1, vanilla("Blocker 2", "{1}", 1, 2))

	require.True(t, g.BeginCombat(1))
	require.True(t, g.DeclareAttacker(big, false))
	require.True(t, g.DeclareAttacker(small, false))
	require.True(t, g.DeclareBlocker(b1, big, false))
	require.True(t, g.DeclareBlocker(b2, big, false))

	require.NoError(t, g.ResolveCombatDamage(false))
	assert.Equal(t, 37, g.Players[1].Life)
	assert.False(t, g.OnBattlefield(b1))
	assert.False(t, g.OnBattlefield(b2))
	assert.Equal(t, 3, big.Creature.DamageTaken)
	assert.True(t, g.OnBattlefield(big))

	require.NoError(t, g.ResolveCombatDamage(false), "second resolve is a no-op")
	assert.Equal(t, 37, g.Players[1].Life)
}

func TestResolveCombatDamage_BlockerRemovedBeforeDamage(t *testing.T) {
	g := newTestGame(t, 2)
	attacker := ready(g, 0, vanilla("Attacker", "{3}", 4, 4))
	blocker := ready(g, 1, vanilla("Blocker", "{1}", 1, 1))

	require.True(t, g.BeginCombat(1))
	require.True(t, g.DeclareAttacker(attacker, false))
	require.True(t, g.DeclareBlocker(blocker, attacker, false))
	require.True(t, g.ReturnToHand(blocker, false))

	require.NoError(t, g.ResolveCombatDamage(false))
	assert.Equal(t, 40, g.Players[1].Life, "a blocked attacker stays blocked")
	assert.Contains(t, g.Players[1].Hand, blocker)
}

func TestEndCombatClearsState(t *testing.T) {
	g := newTestGame(t, 2)
	attacker := ready(g, 0, vanilla("Attacker", "{3}", 4, 4))
	blocker := ready(g, 1, vanilla("Blocker", "{1}", 1, 5))

	require.True(t, g.BeginCombat(1))
	require.True(t, g.DeclareAttacker(attacker, false))
	require.True(t, g.DeclareBlocker(blocker, attacker, false))
	g.EndCombat()

	assert.False(t, g.InCombat())
	assert.Nil(t, g.NonactivePlayer())
	assert.False(t, attacker.Creature.Attacking)
	assert.Empty(t, attacker.Creature.BlockedBy)
	assert.Nil(t, blocker.Creature.Blocking)
}
