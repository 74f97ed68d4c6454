package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrBadResponse is returned when the upstream reply cannot be parsed
// into a valid entry. The adapter fails closed on any ambiguity rather
// than guessing; the caller's retry/fallback path takes over.
var ErrBadResponse = errors.New("unusable supplier response")

// LLMSupplier asks a chat-completions endpoint to invent a song/number
// association for a slot. All free-text JSON extraction lives here, on
// the far side of the Supplier interface.
type LLMSupplier struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
}

// NewLLMSupplier builds a supplier for an OpenAI-compatible chat API.
func NewLLMSupplier(apiKey, apiURL, model string, timeout time.Duration) *LLMSupplier {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &LLMSupplier{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
	}
}

// IsAvailable reports whether the supplier is configured.
func (s *LLMSupplier) IsAvailable() bool {
	return s.apiKey != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type songAssociation struct {
	Number        int    `json:"number"`
	Song          string `json:"song"`
	Artist        string `json:"artist"`
	Clue          string `json:"clue"`
	Year          int    `json:"year"`
	YoutubeSearch string `json:"youtubeSearch"`
}

const systemPrompt = `You are a music bingo content generator. The user names a number between 1 and 75. Respond with ONLY valid JSON (no markdown, no code fences, no explanations) in this format:

{
  "number": 42,
  "song": "Song Title",
  "artist": "Artist Name",
  "clue": "The clue or equation players solve to get the number",
  "year": 1985,
  "youtubeSearch": "Artist Name - Song Title"
}

Rules:
- Choose a well-known, popular song most people would recognize
- The clue must resolve to exactly the requested number: a release year, chart position, duration, or simple wordplay
- Never suggest a song from the excluded list
- Return ONLY the JSON object, nothing else`

// GenerateEntry requests one association and validates it against the
// requested slot before handing it to the game.
func (s *LLMSupplier) GenerateEntry(ctx context.Context, slot int, usedTitles []string) (*Entry, error) {
	if !s.IsAvailable() {
		return nil, errors.New("llm supplier is not configured")
	}

	prompt := fmt.Sprintf("Generate a song association for the number %d.", slot)
	if len(usedTitles) > 0 {
		prompt += "\nExcluded songs (do NOT suggest these): " + strings.Join(usedTitles, ", ")
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm request failed: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if chat.Error != nil {
		return nil, fmt.Errorf("llm error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrBadResponse)
	}

	jsonText, err := extractJSON(chat.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	var assoc songAssociation
	if err := json.Unmarshal([]byte(jsonText), &assoc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if assoc.Number != slot {
		return nil, fmt.Errorf("%w: asked for slot %d, got %d", ErrBadResponse, slot, assoc.Number)
	}
	if assoc.Song == "" || assoc.Artist == "" {
		return nil, fmt.Errorf("%w: missing song or artist", ErrBadResponse)
	}

	return &Entry{
		SlotNumber: slot,
		Song:       assoc.Song,
		Artist:     assoc.Artist,
		Clue:       assoc.Clue,
		Year:       assoc.Year,
	}, nil
}

// extractJSON pulls a JSON object out of a model reply that may be
// wrapped in markdown fences or surrounded by prose. Anything that
// does not isolate to a single object is an error.
func extractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		end := strings.Index(rest, "```")
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated code fence", ErrBadResponse)
		}
		text = strings.TrimSpace(rest[:end])
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+len("```"):]
		end := strings.Index(rest, "```")
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated code fence", ErrBadResponse)
		}
		text = strings.TrimSpace(rest[:end])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found", ErrBadResponse)
	}
	return text[start : end+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
