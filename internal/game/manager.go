package game

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"musicbingo/internal/content"
)

// Config tunes content generation and card layout per manager.
type Config struct {
	// InitialBatch is generated synchronously so the room reaches
	// Ready quickly; the rest of the pool is backfilled in the
	// background. Keeping this small is what keeps room setup fast,
	// and the backfill is what keeps long games from starving.
	InitialBatch int
	// BatchSize is the background backfill step.
	BatchSize int
	// PoolTarget is the pool size the backfill works toward.
	PoolTarget int
	// MaxSlot is the highest slot number in play (75 classic, 50 for
	// movie-only lists).
	MaxSlot int
}

// DefaultConfig matches the classic 75-ball game with a 50-entry pool.
func DefaultConfig() Config {
	return Config{InitialBatch: 3, BatchSize: 5, PoolTarget: 50, MaxSlot: 75}
}

func (c Config) normalized() Config {
	if c.InitialBatch < 1 {
		c.InitialBatch = 1
	}
	if c.BatchSize < 1 {
		c.BatchSize = 1
	}
	if c.MaxSlot < GridSize*GridSize {
		c.MaxSlot = 75
	}
	if c.PoolTarget < 1 || c.PoolTarget > c.MaxSlot {
		c.PoolTarget = c.MaxSlot
	}
	return c
}

// ClaimResult is the outcome of a bingo claim. A false Valid is normal
// traffic, not an error: players mash the button.
type ClaimResult struct {
	Valid      bool    `json:"valid"`
	PlayerName string  `json:"playerName,omitempty"`
	Prizes     []Prize `json:"prizes"`
	Message    string  `json:"message"`
}

// Manager is the session registry: it owns every active room and
// exposes the atomic state-transition operations the transport layer
// calls. The registry lock only guards the map; each room's own mutex
// serializes operations on that room, so rooms never block each other.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	cards *CardGenerator
	gen   *content.Generator
	cfg   Config
}

// NewManager builds a registry around a card generator and a content
// generator. Multiple managers can coexist (nothing is package-global).
func NewManager(cards *CardGenerator, gen *content.Generator, cfg Config) *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
		cards: cards,
		gen:   gen,
		cfg:   cfg.normalized(),
	}
}

// CreateRoom registers an empty room under code. The code is generated
// by the caller; a collision is reported so the caller can retry with
// a fresh one.
func (m *Manager) CreateRoom(code string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rooms[code]; exists {
		return nil, ErrRoomExists
	}
	room := newRoom(code)
	m.rooms[code] = room
	return room, nil
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

func (m *Manager) getRoom(code string) (*Room, error) {
	m.mu.RLock()
	room, ok := m.rooms[code]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// AddPlayer joins a connection to a lobby-phase room, deals it a card
// unique within the room (best effort, capped retries), and makes the
// first joiner host.
func (m *Manager) AddPlayer(code, connID, name string) (*Player, error) {
	room, err := m.getRoom(code)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.phase != PhaseLobby {
		return nil, ErrGameStarted
	}

	player := &Player{
		ID:       connID,
		Name:     name,
		Card:     m.cards.GenerateUniqueCard(connID, room.cardSigs),
		JoinedAt: time.Now(),
	}
	room.addPlayer(player)
	return player, nil
}

// RemovePlayer drops a connection from the room in any phase. The host
// role moves to the longest-joined remaining player; the room is
// destroyed, and its background work cancelled, the moment it empties.
// Returns whether the room was destroyed.
func (m *Manager) RemovePlayer(code, connID string) (bool, error) {
	room, err := m.getRoom(code)
	if err != nil {
		return false, err
	}

	room.mu.Lock()
	empty := room.removePlayer(connID)
	room.mu.Unlock()

	if !empty {
		return false, nil
	}

	room.cancel()
	m.mu.Lock()
	delete(m.rooms, code)
	m.mu.Unlock()
	return true, nil
}

// Removal records one room a connection was removed from during a
// disconnect sweep.
type Removal struct {
	Code      string
	Destroyed bool
}

// RemoveConnection removes connID from every room that contains it.
// Used by the transport's disconnect handling; each per-room removal
// is atomic on its own, the sweep holds no registry-wide lock.
func (m *Manager) RemoveConnection(connID string) []Removal {
	m.mu.RLock()
	codes := make([]string, 0, len(m.rooms))
	for code, room := range m.rooms {
		room.mu.Lock()
		_, present := room.players[connID]
		room.mu.Unlock()
		if present {
			codes = append(codes, code)
		}
	}
	m.mu.RUnlock()

	var removed []Removal
	for _, code := range codes {
		destroyed, err := m.RemovePlayer(code, connID)
		if err != nil {
			continue
		}
		removed = append(removed, Removal{Code: code, Destroyed: destroyed})
	}
	return removed
}

// GenerateContent populates the room's content pool. The initial batch
// is fetched before returning so the room reaches Ready quickly; the
// rest arrives from a background goroutine that notifies after each
// batch and stops when the pool is full, the game ends, or the room is
// destroyed. Host only; repeat and concurrent calls fail visibly.
func (m *Manager) GenerateContent(code, connID string, notify func(*Snapshot)) error {
	room, err := m.getRoom(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if room.hostID != connID {
		room.mu.Unlock()
		return ErrHostOnly
	}
	if room.generating {
		room.mu.Unlock()
		return ErrContentInFlight
	}
	if room.phase != PhaseLobby {
		room.mu.Unlock()
		return ErrContentGenerated
	}

	room.generating = true
	room.phase = PhaseGenerating
	room.slotQueue = shuffledSlots(m.cfg.MaxSlot)

	n := m.cfg.InitialBatch
	if n > m.cfg.PoolTarget {
		n = m.cfg.PoolTarget
	}
	slots := room.slotQueue[:n]
	room.slotQueue = room.slotQueue[n:]
	ctx := room.ctx
	room.mu.Unlock()

	// Supplier round-trips happen without the room lock; the
	// generating flag and the phase guard keep racing calls out.
	entries := m.gen.GenerateBatch(ctx, slots, nil)

	room.mu.Lock()
	room.appendEntries(entries)
	room.phase = PhaseReady
	backfill := len(room.pool) < m.cfg.PoolTarget && len(room.slotQueue) > 0
	if !backfill {
		room.generating = false
	}
	room.mu.Unlock()

	log.Printf("room %s: initial batch of %d entries ready", code, len(entries))
	m.notifyRoom(room, notify)

	if backfill {
		go m.backfill(room, notify)
	}
	return nil
}

// backfill keeps fetching batches until the pool reaches its target or
// the room no longer wants content.
func (m *Manager) backfill(room *Room, notify func(*Snapshot)) {
	defer func() {
		room.mu.Lock()
		room.generating = false
		room.mu.Unlock()
	}()

	for {
		room.mu.Lock()
		if room.ctx.Err() != nil || room.phase == PhaseEnded ||
			len(room.pool) >= m.cfg.PoolTarget || len(room.slotQueue) == 0 {
			room.mu.Unlock()
			return
		}
		n := m.cfg.BatchSize
		if remaining := m.cfg.PoolTarget - len(room.pool); n > remaining {
			n = remaining
		}
		if n > len(room.slotQueue) {
			n = len(room.slotQueue)
		}
		slots := room.slotQueue[:n]
		room.slotQueue = room.slotQueue[n:]
		used := room.usedTitles()
		ctx := room.ctx
		room.mu.Unlock()

		entries := m.gen.GenerateBatch(ctx, slots, used)

		room.mu.Lock()
		if room.ctx.Err() != nil || room.phase == PhaseEnded {
			room.mu.Unlock()
			return
		}
		room.appendEntries(entries)
		size := len(room.pool)
		room.mu.Unlock()

		log.Printf("room %s: pool backfilled to %d entries", room.code, size)
		m.notifyRoom(room, notify)
	}
}

// StartGame moves a Ready room into Playing. Host only.
func (m *Manager) StartGame(code, connID string) error {
	room, err := m.getRoom(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.hostID != connID {
		return ErrHostOnly
	}
	switch room.phase {
	case PhaseReady:
		room.phase = PhasePlaying
		return nil
	case PhasePlaying, PhaseEnded:
		return ErrGameStarted
	default:
		return ErrInvalidPhase
	}
}

// PlayNextEntry reveals one entry chosen uniformly at random among the
// unplayed pool entries, records it in the call history, and returns a
// copy. A nil entry with nil error means the pool is exhausted and the
// game just ended (or had already ended). Host only. Marking player
// cards is the caller's explicit follow-up via MarkNumber.
func (m *Manager) PlayNextEntry(code, connID string) (*content.Entry, error) {
	room, err := m.getRoom(code)
	if err != nil {
		return nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.hostID != connID {
		return nil, ErrHostOnly
	}
	switch room.phase {
	case PhasePlaying:
	case PhaseEnded:
		return nil, nil
	default:
		return nil, ErrInvalidPhase
	}

	unplayed := room.unplayedIndexes()
	if len(unplayed) == 0 {
		room.phase = PhaseEnded
		room.cancel()
		return nil, nil
	}

	entry := room.pool[unplayed[rand.Intn(len(unplayed))]]
	room.usedSlots[entry.SlotNumber] = true
	room.played = append(room.played, entry)

	out := entry
	return &out, nil
}

// MarkNumber marks number on every player's card in the room. Best
// effort: players whose card lacks the number are skipped.
func (m *Manager) MarkNumber(code string, number int) error {
	room, err := m.getRoom(code)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	for _, player := range room.players {
		player.Card.MarkNumber(number)
	}
	return nil
}

// HandleBingoClaim evaluates the claimant's card against the open
// prizes and claims whatever holds. Unknown rooms or players produce a
// negative result, not an error: false claims are expected traffic.
func (m *Manager) HandleBingoClaim(code, connID string) *ClaimResult {
	room, err := m.getRoom(code)
	if err != nil {
		return &ClaimResult{Valid: false, Message: "Room not found"}
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	player, ok := room.players[connID]
	if !ok {
		return &ClaimResult{Valid: false, Message: "Player not found"}
	}

	won := room.prizes.Evaluate(player.Card)
	if len(won) == 0 {
		return &ClaimResult{
			Valid:      false,
			PlayerName: player.Name,
			Prizes:     []Prize{},
			Message:    "No valid bingo pattern found",
		}
	}

	claimed := room.prizes.Claim(won, PrizeWinner{PlayerID: connID, PlayerName: player.Name})
	if len(claimed) == 0 {
		return &ClaimResult{
			Valid:      false,
			PlayerName: player.Name,
			Prizes:     []Prize{},
			Message:    "Those prizes were already claimed",
		}
	}

	names := make([]string, len(claimed))
	prizes := make([]Prize, len(claimed))
	for i, p := range claimed {
		names[i] = p.Name
		prizes[i] = *p
	}
	return &ClaimResult{
		Valid:      true,
		PlayerName: player.Name,
		Prizes:     prizes,
		Message:    fmt.Sprintf("Congratulations! You won: %s", strings.Join(names, ", ")),
	}
}

func (m *Manager) notifyRoom(room *Room, notify func(*Snapshot)) {
	if notify == nil {
		return
	}
	room.mu.Lock()
	snap := room.snapshotLocked()
	room.mu.Unlock()
	notify(snap)
}

func shuffledSlots(maxSlot int) []int {
	slots := make([]int, maxSlot)
	for i := range slots {
		slots[i] = i + 1
	}
	rand.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })
	return slots
}
