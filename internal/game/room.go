package game

import (
	"context"
	"sync"
	"time"

	"musicbingo/internal/content"
)

// Player is the ephemeral per-connection entity. The card is generated
// at join time and never regenerated once the room leaves the lobby.
type Player struct {
	ID       string
	Name     string
	Card     *BingoCard
	IsHost   bool
	JoinedAt time.Time
}

// Room is the aggregate root for one game session. All mutable fields
// are guarded by mu; no two manager operations on the same room may
// overlap. The context is cancelled when the room ends or is
// destroyed, which stops the background pool augmentation.
type Room struct {
	mu sync.Mutex

	code      string
	players   map[string]*Player
	order     []string // join order, drives host reassignment
	hostID    string
	pool      []content.Entry
	played    []content.Entry
	usedSlots map[int]bool
	slotQueue []int // shuffled slots not yet assigned to pool entries
	cardSigs  map[string]bool
	prizes    *PrizeLedger
	phase     Phase
	createdAt time.Time

	generating bool
	ctx        context.Context
	cancel     context.CancelFunc
}

func newRoom(code string) *Room {
	ctx, cancel := context.WithCancel(context.Background())
	return &Room{
		code:      code,
		players:   make(map[string]*Player),
		usedSlots: make(map[int]bool),
		cardSigs:  make(map[string]bool),
		prizes:    NewPrizeLedger(),
		phase:     PhaseLobby,
		createdAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Code returns the room's immutable join code.
func (r *Room) Code() string {
	return r.code
}

// addPlayer registers a player in join order. First joiner is host.
// Caller holds r.mu.
func (r *Room) addPlayer(p *Player) {
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	if len(r.players) == 1 {
		p.IsHost = true
		r.hostID = p.ID
	}
}

// removePlayer drops the player and reassigns the host to the first
// remaining player by join order. Returns true when the room is now
// empty. Caller holds r.mu.
func (r *Room) removePlayer(connID string) bool {
	if _, ok := r.players[connID]; !ok {
		return len(r.players) == 0
	}
	delete(r.players, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if len(r.players) == 0 {
		r.hostID = ""
		return true
	}

	if r.hostID == connID {
		next := r.players[r.order[0]]
		next.IsHost = true
		r.hostID = next.ID
	}
	return false
}

// usedTitles returns the dedup keys of every entry already in the
// pool, for the supplier's exclusion list. Caller holds r.mu.
func (r *Room) usedTitles() []string {
	titles := make([]string, 0, len(r.pool))
	for _, e := range r.pool {
		titles = append(titles, e.Key())
	}
	return titles
}

// appendEntries adds generated entries to the pool, dropping any whose
// slot number somehow collides with an existing one. Caller holds r.mu.
func (r *Room) appendEntries(entries []content.Entry) {
	seen := make(map[int]bool, len(r.pool))
	for _, e := range r.pool {
		seen[e.SlotNumber] = true
	}
	for _, e := range entries {
		if seen[e.SlotNumber] {
			continue
		}
		seen[e.SlotNumber] = true
		r.pool = append(r.pool, e)
	}
}

// unplayedIndexes returns pool indexes whose slot has not been called.
// Caller holds r.mu.
func (r *Room) unplayedIndexes() []int {
	var idx []int
	for i, e := range r.pool {
		if !r.usedSlots[e.SlotNumber] {
			idx = append(idx, i)
		}
	}
	return idx
}
