package game

import "errors"

// Sentinel errors shared by every manager operation. These are local,
// recoverable conditions resolved at the operation boundary; the
// transport layer translates them into per-client rejections and none
// of them may crash the process or corrupt other rooms.

// ErrRoomNotFound is returned when a room code has no active room.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomExists is returned on a room-code collision at creation.
// Callers should regenerate a code and retry.
var ErrRoomExists = errors.New("room already exists")

// ErrGameStarted is returned when an operation requires the lobby
// phase but the game has already moved on, e.g. a late join.
var ErrGameStarted = errors.New("game already started")

// ErrInvalidPhase is returned when an operation is requested in a
// phase that forbids it, e.g. starting before content is ready.
var ErrInvalidPhase = errors.New("invalid phase for operation")

// ErrPlayerNotFound is returned when an action references a
// connection not present in the room.
var ErrPlayerNotFound = errors.New("player not found")

// ErrHostOnly is returned when a non-host attempts a host-only
// operation. Room state is unchanged.
var ErrHostOnly = errors.New("only the host can do that")

// ErrContentInFlight is returned when content generation is requested
// while a previous request is still running.
var ErrContentInFlight = errors.New("content generation already in progress")

// ErrContentGenerated is returned when content generation is requested
// for a room whose pool was already generated.
var ErrContentGenerated = errors.New("content already generated")
