package handlers

import (
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"musicbingo/internal/game"
	"musicbingo/internal/models"
)

const (
	roomCodeLength = 3
	codeChars      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// createAttempts bounds code regeneration on collisions. With
	// 26^3 codes and a handful of concurrent rooms, one retry is
	// already rare.
	createAttempts = 10
)

// CreateRoom registers a new empty room under a fresh 3-letter code,
// regenerating the code when it collides with a live room.
func CreateRoom(m *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		for attempt := 0; attempt < createAttempts; attempt++ {
			code := generateRoomCode()
			if _, err := m.CreateRoom(code); err != nil {
				if errors.Is(err, game.ErrRoomExists) {
					continue
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			log.Printf("room created: %s", code)
			c.JSON(http.StatusCreated, models.CreateRoomResponse{RoomCode: code})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not allocate a room code"})
	}
}

// GetRoom returns the broadcast snapshot of a room.
func GetRoom(m *game.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := m.Snapshot(c.Param("code"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NetworkInfo reports the host machine's LAN address so the host
// screen can render a join QR code for phones on the same network.
func NetworkInfo(port string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := primaryLocalIP()
		c.JSON(http.StatusOK, models.NetworkInfo{
			IP:   ip,
			Port: port,
			URL:  "http://" + ip + ":" + port,
		})
	}
}

// primaryLocalIP returns the first non-loopback IPv4 address, falling
// back to localhost when the interfaces cannot be read.
func primaryLocalIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "localhost"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return "localhost"
}

// generateRoomCode returns a random fixed-length uppercase code.
func generateRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		code[i] = codeChars[n.Int64()]
	}
	return string(code)
}
