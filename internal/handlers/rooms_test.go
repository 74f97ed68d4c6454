package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"musicbingo/internal/content"
	"musicbingo/internal/game"
	"musicbingo/internal/models"
)

type stubSupplier struct{}

func (stubSupplier) GenerateEntry(_ context.Context, slot int, _ []string) (*content.Entry, error) {
	return &content.Entry{SlotNumber: slot, Song: fmt.Sprintf("Track %d", slot), Artist: "Test Artist"}, nil
}

func newTestRouter() (*gin.Engine, *game.Manager) {
	gin.SetMode(gin.TestMode)

	gen := content.NewGenerator(stubSupplier{}, content.RetryPolicy{MaxAttempts: 1})
	cards := game.NewCardGenerator(1, game.DefaultColumnRanges())
	m := game.NewManager(cards, gen, game.DefaultConfig())

	r := gin.New()
	r.GET("/api/health", Health)
	r.POST("/api/rooms", CreateRoom(m))
	r.GET("/api/rooms/:code", GetRoom(m))
	return r, m
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestCreateRoom(t *testing.T) {
	router, m := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/rooms", nil))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp models.CreateRoomResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.RoomCode) != roomCodeLength {
		t.Errorf("room code %q has length %d, want %d", resp.RoomCode, len(resp.RoomCode), roomCodeLength)
	}
	for _, ch := range resp.RoomCode {
		if ch < 'A' || ch > 'Z' {
			t.Errorf("room code %q contains non-uppercase character", resp.RoomCode)
		}
	}
	if m.RoomCount() != 1 {
		t.Errorf("RoomCount = %d after create, want 1", m.RoomCount())
	}
}

func TestGetRoom(t *testing.T) {
	router, m := newTestRouter()
	m.CreateRoom("ABC")
	m.AddPlayer("ABC", "conn-1", "Alice")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms/ABC", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Code != "ABC" || snap.PlayerCount != 1 || snap.Phase != game.PhaseLobby {
		t.Errorf("snapshot = %+v", snap)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms/ZZZ", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing room status = %d, want 404", w.Code)
	}
}

func TestGenerateRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateRoomCode()
		if len(code) != roomCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), roomCodeLength)
		}
		seen[code] = true
	}
	// 26^3 codes; 100 draws colliding down to a handful would mean the
	// generator is broken, not unlucky.
	if len(seen) < 90 {
		t.Errorf("100 draws produced only %d distinct codes", len(seen))
	}
}

func TestOriginFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OriginFilter([]string{"http://localhost:3000"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		origin string
		want   int
	}{
		{"allowed origin", "http://localhost:3000", http.StatusOK},
		{"no origin", "", http.StatusOK},
		{"forbidden origin", "http://evil.example", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && tt.origin != "" {
				if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.origin {
					t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.origin)
				}
			}
		})
	}
}
