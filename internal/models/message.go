package models

import "encoding/json"

// EventType identifies a websocket game event.
type EventType string

const (
	// Client -> server.
	EventJoinRoom        EventType = "join-room"
	EventGenerateContent EventType = "generate-content"
	EventStartGame       EventType = "start-game"
	EventPlayNext        EventType = "play-next"
	EventClaimBingo      EventType = "claim-bingo"
	EventGetRoomState    EventType = "get-room-state"

	// Server -> client.
	EventCardAssigned    EventType = "card-assigned"
	EventRoomState       EventType = "room-state"
	EventContentProgress EventType = "content-progress"
	EventContentReady    EventType = "content-ready"
	EventGameStarted     EventType = "game-started"
	EventNewEntry        EventType = "new-entry"
	EventGameEnded       EventType = "game-ended"
	EventBingoResult     EventType = "bingo-result"
	EventBingoClaimed    EventType = "bingo-claimed"
	EventError           EventType = "error"
)

// Envelope is the inbound wire frame: a type plus a raw payload the
// router decodes per event.
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message is the outbound wire frame.
type Message struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// JoinRoomPayload carries the display name supplied at join.
type JoinRoomPayload struct {
	Name string `json:"name"`
}

// ErrorPayload carries a user-facing rejection.
type ErrorPayload struct {
	Message string `json:"message"`
}
