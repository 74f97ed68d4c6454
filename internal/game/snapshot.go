package game

import (
	"time"

	"musicbingo/internal/content"
)

// PlayerInfo is the public roster entry: no card, no connection
// internals beyond the id clients already use to address each other.
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// Snapshot is a deep, read-only projection of a room for broadcast.
// Every collection is a copy; mutating a snapshot never touches the
// room.
type Snapshot struct {
	Code          string          `json:"code"`
	Phase         Phase           `json:"phase"`
	Generating    bool            `json:"generating"`
	Players       []PlayerInfo    `json:"players"`
	PlayerCount   int             `json:"playerCount"`
	HostID        string          `json:"host"`
	PoolSize      int             `json:"poolSize"`
	Pool          []content.Entry `json:"pool"`
	Played        []content.Entry `json:"played"`
	CalledNumbers []int           `json:"calledNumbers"`
	Prizes        []Prize         `json:"prizes"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Snapshot assembles the broadcast view of a room.
func (m *Manager) Snapshot(code string) (*Snapshot, error) {
	room, err := m.getRoom(code)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	return room.snapshotLocked(), nil
}

// PlayerCard returns a copy of one player's card, for the private
// card-assigned message on join and for state resync.
func (m *Manager) PlayerCard(code, connID string) (*BingoCard, error) {
	room, err := m.getRoom(code)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	player, ok := room.players[connID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return player.Card.Clone(), nil
}

// snapshotLocked builds the projection. Caller holds r.mu.
func (r *Room) snapshotLocked() *Snapshot {
	players := make([]PlayerInfo, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		players = append(players, PlayerInfo{ID: p.ID, Name: p.Name, IsHost: p.IsHost})
	}

	pool := make([]content.Entry, len(r.pool))
	copy(pool, r.pool)
	played := make([]content.Entry, len(r.played))
	copy(played, r.played)

	called := make([]int, 0, len(r.played))
	for _, e := range r.played {
		called = append(called, e.SlotNumber)
	}

	return &Snapshot{
		Code:          r.code,
		Phase:         r.phase,
		Generating:    r.generating,
		Players:       players,
		PlayerCount:   len(players),
		HostID:        r.hostID,
		PoolSize:      len(pool),
		Pool:          pool,
		Played:        played,
		CalledNumbers: called,
		Prizes:        r.prizes.All(),
		CreatedAt:     r.createdAt,
	}
}
