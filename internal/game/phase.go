package game

// Phase represents the lifecycle stage of a room.
type Phase string

const (
	// PhaseLobby indicates the room is waiting for players to join.
	PhaseLobby Phase = "lobby"
	// PhaseGenerating indicates the content pool is being generated.
	PhaseGenerating Phase = "generating"
	// PhaseReady indicates content exists and the game can start.
	PhaseReady Phase = "ready"
	// PhasePlaying indicates entries are being played.
	PhasePlaying Phase = "playing"
	// PhaseEnded indicates the pool was exhausted and the game is over.
	PhaseEnded Phase = "ended"
)
