package game

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/magefree/commander-go/internal/game/rules"
)

const replayVersion = 2

// ErrEmptyReplay is returned when a replay holds no states.
var ErrEmptyReplay = errors.New("replay has no states")

// Replay is a recorded game: one snapshot per turn plus the final state,
// oldest first.
type Replay struct {
	GameID string
	States []*Snapshot
}

type replayHeader struct {
	Version int
	GameID  string
	Saved   time.Time
	States  int
}

// NewReplay returns an empty replay for gameID.
func NewReplay(gameID string) *Replay {
	return &Replay{GameID: gameID}
}

// RecordState appends a snapshot.
func (r *Replay) RecordState(s *Snapshot) {
	r.States = append(r.States, s)
}

// RecordTurns records a snapshot of g at the start of every turn and once
// when the game ends.
func (r *Replay) RecordTurns(g *Game) {
	record := func(rules.Event) { r.RecordState(g.Snapshot()) }
	g.Events().SubscribeTyped(rules.EventBeginTurn, record)
	g.Events().SubscribeTyped(rules.EventGameOver, record)
}

// Size returns the number of recorded states.
func (r *Replay) Size() int {
	return len(r.States)
}

// At returns the i-th state, or nil when i is out of range.
func (r *Replay) At(i int) *Snapshot {
	if i < 0 || i >= len(r.States) {
		return nil
	}
	return r.States[i]
}

// Final returns the last recorded state, or nil for an empty replay.
func (r *Replay) Final() *Snapshot {
	return r.At(len(r.States) - 1)
}

// Verify checks the final state against a checksum reported when the game
// was played.
func (r *Replay) Verify(checksum string) error {
	final := r.Final()
	if final == nil {
		return ErrEmptyReplay
	}
	got, err := final.Checksum()
	if err != nil {
		return err
	}
	if got != checksum {
		return fmt.Errorf("replay %s: final checksum %s, want %s", r.GameID, got, checksum)
	}
	return nil
}

// ReplayPath is the file a replay of gameID is saved to under dir.
func ReplayPath(dir, gameID string) string {
	return filepath.Join(dir, gameID+".replay")
}

// Encode writes the replay as gzipped gob.
func (r *Replay) Encode(w io.Writer) error {
	zw := gzip.NewWriter(w)
	enc := gob.NewEncoder(zw)
	hdr := replayHeader{Version: replayVersion, GameID: r.GameID, Saved: time.Now(), States: len(r.States)}
	if err := enc.Encode(&hdr); err != nil {
		return fmt.Errorf("encode replay header: %w", err)
	}
	for i, s := range r.States {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode state %d: %w", i, err)
		}
	}
	return zw.Close()
}

// DecodeReplay reads a replay written by Encode.
func DecodeReplay(rd io.Reader) (*Replay, error) {
	zr, err := gzip.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer zr.Close()

	dec := gob.NewDecoder(zr)
	var hdr replayHeader
	if err := dec.Decode(&hdr); err != nil {
		return nil, fmt.Errorf("decode replay header: %w", err)
	}
	if hdr.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version %d", hdr.Version)
	}
	r := &Replay{GameID: hdr.GameID, States: make([]*Snapshot, 0, hdr.States)}
	for i := 0; i < hdr.States; i++ {
		s := new(Snapshot)
		if err := dec.Decode(s); err != nil {
			return nil, fmt.Errorf("decode state %d: %w", i, err)
		}
		r.States = append(r.States, s)
	}
	return r, nil
}

// Save writes the replay to ReplayPath(dir, r.GameID) and returns the path.
func (r *Replay) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := ReplayPath(dir, r.GameID)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// LoadReplay reads a replay file.
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeReplay(f)
}
