package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"musicbingo/internal/game"
	"musicbingo/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checking is handled by middleware.
		return true
	},
}

// SocketServer owns the websocket side of the transport: one Client
// per connection, a per-room peer set for fan-out, and the event
// router that maps each inbound event onto exactly one manager
// operation. Game state lives in the manager; this layer only
// serializes results back to subscribers.
type SocketServer struct {
	manager *game.Manager

	mu    sync.RWMutex
	peers map[string]map[string]*Client // room code -> conn id -> client
}

// NewSocketServer builds the websocket transport over a game manager.
func NewSocketServer(m *game.Manager) *SocketServer {
	return &SocketServer{
		manager: m,
		peers:   make(map[string]map[string]*Client),
	}
}

// Client is one websocket connection.
type Client struct {
	ID   string
	Code string
	Conn *websocket.Conn
	Send chan []byte

	joined bool
}

// Handle upgrades GET /ws/rooms/:code and runs the client's pumps.
// The player is not added to the room until the join-room event
// arrives with a display name.
func (s *SocketServer) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room code is required"})
			return
		}
		if _, err := s.manager.Snapshot(code); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("ws: upgrade failed: %v", err)
			return
		}

		client := &Client{
			ID:   uuid.New().String(),
			Code: code,
			Conn: conn,
			Send: make(chan []byte, 256),
		}

		log.Printf("ws: connection %s opened for room %s", client.ID, code)

		go client.writePump()
		go s.readPump(client)
	}
}

func (s *SocketServer) readPump(c *Client) {
	defer s.disconnect(c)

	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws: read error: %v", err)
			}
			return
		}

		var env models.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("ws: bad frame from %s: %v", c.ID, err)
			continue
		}
		s.route(c, env)
	}
}

// route dispatches one inbound event. Every mutating event ends with a
// room-state broadcast so all subscribers converge on the same view.
func (s *SocketServer) route(c *Client, env models.Envelope) {
	switch env.Type {
	case models.EventJoinRoom:
		s.handleJoin(c, env.Payload)

	case models.EventGenerateContent:
		s.handleGenerateContent(c)

	case models.EventStartGame:
		if err := s.manager.StartGame(c.Code, c.ID); err != nil {
			s.sendError(c, err)
			return
		}
		s.broadcastSnapshot(c.Code, models.EventGameStarted)
		log.Printf("room %s: game started", c.Code)

	case models.EventPlayNext:
		s.handlePlayNext(c)

	case models.EventClaimBingo:
		s.handleClaim(c)

	case models.EventGetRoomState:
		snap, err := s.manager.Snapshot(c.Code)
		if err != nil {
			s.sendError(c, err)
			return
		}
		s.sendTo(c, models.EventRoomState, snap)

	default:
		log.Printf("ws: unknown event %q from %s", env.Type, c.ID)
	}
}

func (s *SocketServer) handleJoin(c *Client, payload json.RawMessage) {
	var req models.JoinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.Name == "" {
		s.sendTo(c, models.EventError, models.ErrorPayload{Message: "a display name is required"})
		return
	}

	player, err := s.manager.AddPlayer(c.Code, c.ID, req.Name)
	if err != nil {
		s.sendError(c, err)
		return
	}

	c.joined = true
	s.addPeer(c)

	s.sendTo(c, models.EventCardAssigned, gin.H{
		"card":   player.Card.Clone(),
		"isHost": player.IsHost,
	})
	s.broadcastSnapshot(c.Code, models.EventRoomState)
	log.Printf("room %s: %s joined as %s", c.Code, req.Name, c.ID)
}

func (s *SocketServer) handleGenerateContent(c *Client) {
	notify := func(snap *game.Snapshot) {
		s.broadcast(c.Code, models.EventContentProgress, snap)
	}
	if err := s.manager.GenerateContent(c.Code, c.ID, notify); err != nil {
		s.sendError(c, err)
		return
	}
	// The initial batch is in the pool once GenerateContent returns;
	// the backfill keeps emitting content-progress on its own.
	s.broadcastSnapshot(c.Code, models.EventContentReady)
	log.Printf("room %s: content generation started", c.Code)
}

func (s *SocketServer) handlePlayNext(c *Client) {
	entry, err := s.manager.PlayNextEntry(c.Code, c.ID)
	if err != nil {
		s.sendError(c, err)
		return
	}

	if entry == nil {
		snap, err := s.manager.Snapshot(c.Code)
		if err != nil {
			return
		}
		s.broadcast(c.Code, models.EventGameEnded, gin.H{
			"message": "Game over!",
			"prizes":  snap.Prizes,
		})
		log.Printf("room %s: pool exhausted, game over", c.Code)
		return
	}

	// Dealing and marking are separate manager operations; the
	// transport sequences them.
	if err := s.manager.MarkNumber(c.Code, entry.SlotNumber); err != nil {
		s.sendError(c, err)
		return
	}

	s.broadcast(c.Code, models.EventNewEntry, gin.H{"entry": entry})
	s.broadcastSnapshot(c.Code, models.EventRoomState)
	log.Printf("room %s: playing #%d %s", c.Code, entry.SlotNumber, entry.Key())
}

func (s *SocketServer) handleClaim(c *Client) {
	result := s.manager.HandleBingoClaim(c.Code, c.ID)
	s.sendTo(c, models.EventBingoResult, result)

	if !result.Valid {
		return
	}
	s.broadcast(c.Code, models.EventBingoClaimed, gin.H{
		"playerName": result.PlayerName,
		"prizes":     result.Prizes,
	})
	s.broadcastSnapshot(c.Code, models.EventRoomState)
	log.Printf("room %s: %s claimed bingo: %s", c.Code, result.PlayerName, result.Message)
}

// disconnect tears the connection down and removes the player from the
// game. Removal is explicit and synchronous with the close; there is
// no timeout-based eviction.
func (s *SocketServer) disconnect(c *Client) {
	c.Conn.Close()
	s.removePeer(c)

	if !c.joined {
		return
	}
	for _, removal := range s.manager.RemoveConnection(c.ID) {
		if removal.Destroyed {
			log.Printf("room %s: destroyed after last player left", removal.Code)
			continue
		}
		s.broadcastSnapshot(removal.Code, models.EventRoomState)
	}
	log.Printf("ws: connection %s closed", c.ID)
}

func (s *SocketServer) addPeer(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.peers[c.Code] == nil {
		s.peers[c.Code] = make(map[string]*Client)
	}
	s.peers[c.Code][c.ID] = c
}

func (s *SocketServer) removePeer(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.peers[c.Code]; ok {
		delete(set, c.ID)
		if len(set) == 0 {
			delete(s.peers, c.Code)
		}
	}
}

func (s *SocketServer) broadcastSnapshot(code string, event models.EventType) {
	snap, err := s.manager.Snapshot(code)
	if err != nil {
		return
	}
	s.broadcast(code, event, snap)
}

func (s *SocketServer) broadcast(code string, event models.EventType, payload any) {
	data, err := json.Marshal(models.Message{Type: event, Payload: payload})
	if err != nil {
		log.Printf("ws: marshal %s failed: %v", event, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, client := range s.peers[code] {
		select {
		case client.Send <- data:
		default:
			log.Printf("ws: send buffer full for %s, dropping frame", id)
		}
	}
}

func (s *SocketServer) sendTo(c *Client, event models.EventType, payload any) {
	data, err := json.Marshal(models.Message{Type: event, Payload: payload})
	if err != nil {
		log.Printf("ws: marshal %s failed: %v", event, err)
		return
	}
	select {
	case c.Send <- data:
	default:
		log.Printf("ws: send buffer full for %s, dropping frame", c.ID)
	}
}

func (s *SocketServer) sendError(c *Client, err error) {
	s.sendTo(c, models.EventError, models.ErrorPayload{Message: err.Error()})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
