package models

// CreateRoomResponse is returned by the room creation endpoint. The
// code is what players type (or scan) to join.
type CreateRoomResponse struct {
	RoomCode string `json:"roomCode"`
}

// NetworkInfo tells the host which LAN URL to put in the join QR code.
type NetworkInfo struct {
	IP   string `json:"ip"`
	Port string `json:"port"`
	URL  string `json:"url"`
}
