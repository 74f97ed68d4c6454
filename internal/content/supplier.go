// Package content supplies number-labeled playable entries for the
// game: an LLM-backed supplier that invents song/number associations,
// an embedded catalog for offline play, and enrichment adapters that
// attach preview URLs. The game core only ever sees final, validated
// entries; all upstream parsing and retrying stays in this package.
package content

import "context"

// Entry is one playable unit: a song (or movie/song pairing) tied to
// exactly one slot number. The game core consumes only SlotNumber and
// Key; everything else is display metadata for clients.
type Entry struct {
	SlotNumber int    `json:"number"`
	Song       string `json:"song,omitempty"`
	Artist     string `json:"artist,omitempty"`
	Movie      string `json:"movie,omitempty"`
	Year       int    `json:"year,omitempty"`
	Language   string `json:"language,omitempty"`
	Clue       string `json:"clue,omitempty"`
	VideoID    string `json:"videoId,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Link       string `json:"link,omitempty"`
}

// Key returns the uniqueness key used for dedup and exclusion lists.
func (e Entry) Key() string {
	if e.Song != "" {
		return e.Artist + " - " + e.Song
	}
	return e.Movie
}

// Supplier produces one entry for a slot number, excluding titles
// already used in the room. A call may take a network round-trip and
// may fail; the Generator owns retries and fallbacks.
type Supplier interface {
	GenerateEntry(ctx context.Context, slot int, usedTitles []string) (*Entry, error)
}

// Enricher attaches playback metadata (preview URL, link) to an entry.
// Enrichment is best effort: a failed lookup leaves the entry playable
// without it.
type Enricher interface {
	Enrich(ctx context.Context, e *Entry) error
}
