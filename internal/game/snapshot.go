package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/magefree/commander-go/internal/game/mana"
)

// CardSnapshot is the visible state of one permanent.
type CardSnapshot struct {
	Name        string
	Kind        string
	Owner       int
	Tapped      bool
	Power       int
	Toughness   int
	Damage      int
	Loyalty     int
	IsCommander bool
	IsToken     bool
}

// PlayerSnapshot is the visible state of one seat.
type PlayerSnapshot struct {
	Index       int
	Name        string
	Life        int
	GenericDebt int
	Pool        map[string]int
	HandSize    int
	DeckSize    int
	CommandZone []string
	HasLost     bool
	LossReason  string
}

// CommanderDamageEntry is one ledger cell keyed by commander name and owner.
type CommanderDamageEntry struct {
	Commander string
	Owner     int
	Victim    int
	Damage    int
}

// Snapshot is a gob-encodable copy of a game's public state.
type Snapshot struct {
	GameID          string
	Timestamp       time.Time
	Turn            int
	Phase           string
	Active          int
	Players         []PlayerSnapshot
	Battlefield     []CardSnapshot
	CommanderDamage []CommanderDamageEntry
}

// Snapshot captures the current public state.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		GameID:    g.ID.String(),
		Timestamp: time.Now(),
		Turn:      g.TurnNumber(),
		Phase:     g.Phase().String(),
		Active:    g.ActiveSeat(),
	}
	for _, p := range g.Players {
		ps := PlayerSnapshot{
			Index:       p.Index,
			Name:        p.Name,
			Life:        p.Life,
			GenericDebt: p.GenericDebt,
			Pool:        make(map[string]int),
			HandSize:    len(p.Hand),
			DeckSize:    len(p.Deck),
			HasLost:     p.HasLost,
			LossReason:  p.LossReason,
		}
		for t, n := range p.Pool.Amounts() {
			ps.Pool[string(t)] = n
		}
		for _, c := range p.CommandZone {
			ps.CommandZone = append(ps.CommandZone, c.Name)
		}
		s.Players = append(s.Players, ps)
	}
	for _, c := range g.Battlefield {
		cs := CardSnapshot{
			Name:        c.Name,
			Kind:        c.Kind.String(),
			Owner:       g.owners[c.ID],
			Tapped:      c.Tapped,
			Loyalty:     c.Loyalty(),
			IsCommander: c.IsCommander,
			IsToken:     c.IsToken,
		}
		if c.Creature != nil {
			cs.Power = c.Creature.Power
			cs.Toughness = c.Creature.Toughness
			cs.Damage = c.Creature.DamageTaken
		}
		s.Battlefield = append(s.Battlefield, cs)
	}
	commanders := g.commandersByID()
	for id, ledger := range g.CommanderDamage {
		name := id.String()
		if c, ok := commanders[id]; ok {
			name = c.Name
		}
		for victim, dmg := range ledger {
			s.CommanderDamage = append(s.CommanderDamage, CommanderDamageEntry{
				Commander: name,
				Owner:     g.owners[id],
				Victim:    victim,
				Damage:    dmg,
			})
		}
	}
	sort.Slice(s.CommanderDamage, func(i, j int) bool {
		a, b := s.CommanderDamage[i], s.CommanderDamage[j]
		if a.Owner != b.Owner {
			return a.Owner < b.Owner
		}
		if a.Commander != b.Commander {
			return a.Commander < b.Commander
		}
		return a.Victim < b.Victim
	})
	return s
}

func (g *Game) commandersByID() map[uuid.UUID]*Card {
	out := make(map[uuid.UUID]*Card)
	for _, p := range g.Players {
		for _, c := range p.Commanders {
			out[c.ID] = c
		}
	}
	return out
}

// Checksum returns a SHA-256 over the deterministic parts of the snapshot.
// The game ID, timestamp and card IDs are left out, so two games played from
// the same seed produce the same checksums.
func (s *Snapshot) Checksum() (string, error) {
	hash := sha256.New()
	if _, err := hash.Write([]byte(s.deterministicRepresentation())); err != nil {
		return "", fmt.Errorf("failed to compute hash: %w", err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func (s *Snapshot) deterministicRepresentation() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "GAME:%d|%s|%d\n", s.Turn, s.Phase, s.Active)

	for _, p := range s.Players {
		fmt.Fprintf(&buf, "PLAYER:%d|%s|%d|%d|%d|%d|%t|%s\n",
			p.Index, p.Name, p.Life, p.GenericDebt, p.HandSize, p.DeckSize, p.HasLost, p.LossReason)
		for _, t := range mana.PoolTypes {
			if n := p.Pool[string(t)]; n != 0 {
				fmt.Fprintf(&buf, "  POOL:%s=%d\n", t, n)
			}
		}
		buf.WriteString("  COMMAND:")
		buf.WriteString(strings.Join(p.CommandZone, ","))
		buf.WriteString("\n")
	}

	// battlefield order is meaningful
	for _, c := range s.Battlefield {
		fmt.Fprintf(&buf, "CARD:%s|%s|%d|%t|%d|%d|%d|%d|%t|%t\n",
			c.Name, c.Kind, c.Owner, c.Tapped, c.Power, c.Toughness, c.Damage, c.Loyalty, c.IsCommander, c.IsToken)
	}

	for _, e := range s.CommanderDamage {
		fmt.Fprintf(&buf, "CMDDMG:%s|%d|%d|%d\n", e.Commander, e.Owner, e.Victim, e.Damage)
	}
	return buf.String()
}

// SerializeToBytes gob-encodes the snapshot.
func (s *Snapshot) SerializeToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeSnapshot decodes a snapshot written by SerializeToBytes.
func DeserializeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}
