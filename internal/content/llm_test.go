package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			in:   `{"number": 7}`,
			want: `{"number": 7}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"number\": 7}\n```",
			want: `{"number": 7}`,
		},
		{
			name: "plain fence",
			in:   "```\n{\"number\": 7}\n```",
			want: `{"number": 7}`,
		},
		{
			name: "surrounding prose",
			in:   `Here is your association: {"number": 7} Enjoy!`,
			want: `{"number": 7}`,
		},
		{
			name: "fence with prose outside",
			in:   "Sure!\n```json\n{\"number\": 7}\n```\nLet me know if you need more.",
			want: `{"number": 7}`,
		},
		{
			name:    "no object",
			in:      "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "unterminated fence",
			in:      "```json\n{\"number\": 7}",
			wantErr: true,
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("extractJSON(%q) = %q, want error", tt.in, got)
				}
				if !errors.Is(err, ErrBadResponse) {
					t.Errorf("error = %v, want ErrBadResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractJSON(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// chatServer fakes a chat-completions endpoint that always answers with
// the given message content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization header = %q", got)
		}
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	}))
}

func TestLLMGenerateEntry(t *testing.T) {
	srv := chatServer(t, "```json\n{\"number\": 42, \"song\": \"Test Song\", \"artist\": \"Test Artist\", \"clue\": \"released in 1942\", \"year\": 1942}\n```")
	defer srv.Close()

	s := NewLLMSupplier("test-key", srv.URL, "test-model", 5*time.Second)
	entry, err := s.GenerateEntry(context.Background(), 42, []string{"Other Artist - Other Song"})
	if err != nil {
		t.Fatalf("GenerateEntry: %v", err)
	}
	if entry.SlotNumber != 42 || entry.Song != "Test Song" || entry.Artist != "Test Artist" || entry.Year != 1942 {
		t.Errorf("entry = %+v", entry)
	}
}

func TestLLMGenerateEntryFailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"slot mismatch", `{"number": 13, "song": "Test Song", "artist": "Test Artist"}`},
		{"missing song", `{"number": 42, "artist": "Test Artist"}`},
		{"missing artist", `{"number": 42, "song": "Test Song"}`},
		{"not json", `the answer is 42`},
		{"malformed json", `{"number": 42, "song": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, tt.content)
			defer srv.Close()

			s := NewLLMSupplier("test-key", srv.URL, "test-model", 5*time.Second)
			entry, err := s.GenerateEntry(context.Background(), 42, nil)
			if err == nil {
				t.Fatalf("GenerateEntry accepted %q: %+v", tt.content, entry)
			}
			if !errors.Is(err, ErrBadResponse) {
				t.Errorf("error = %v, want ErrBadResponse", err)
			}
		})
	}
}

func TestLLMGenerateEntryUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewLLMSupplier("test-key", srv.URL, "test-model", 5*time.Second)
	if _, err := s.GenerateEntry(context.Background(), 1, nil); err == nil {
		t.Errorf("GenerateEntry succeeded against a 429 upstream")
	}

	unconfigured := NewLLMSupplier("", srv.URL, "test-model", 5*time.Second)
	if unconfigured.IsAvailable() {
		t.Errorf("IsAvailable = true without an API key")
	}
	if _, err := unconfigured.GenerateEntry(context.Background(), 1, nil); err == nil {
		t.Errorf("GenerateEntry succeeded without an API key")
	}
}
