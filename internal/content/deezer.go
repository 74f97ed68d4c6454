package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const deezerBaseURL = "https://api.deezer.com"

// DeezerClient looks up 30-second preview URLs on Deezer's free search
// API. Lookups go through the optional cache first so repeated games
// with overlapping playlists stay off the network.
type DeezerClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *LookupCache
}

// NewDeezerClient builds an enricher; cache may be nil.
func NewDeezerClient(cache *LookupCache) *DeezerClient {
	return &DeezerClient{
		baseURL:    deezerBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache,
	}
}

type deezerTrack struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Preview string `json:"preview"`
	Artist  struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		Cover       string `json:"cover_medium"`
		ReleaseDate string `json:"release_date"`
	} `json:"album"`
}

type deezerSearchResponse struct {
	Data []deezerTrack `json:"data"`
}

// Enrich fills PreviewURL and Link for an entry with a known song.
func (d *DeezerClient) Enrich(ctx context.Context, e *Entry) error {
	if e.Song == "" {
		return nil
	}
	track, err := d.searchTrack(ctx, e.Artist, e.Song, e.Year)
	if err != nil {
		return err
	}
	if track == nil {
		return nil
	}
	e.PreviewURL = track.Preview
	e.Link = track.Link
	return nil
}

func (d *DeezerClient) searchTrack(ctx context.Context, artist, song string, year int) (*deezerTrack, error) {
	query := fmt.Sprintf("artist:%q track:%q", artist, song)
	cacheKey := "deezer:" + query

	var cached deezerTrack
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	searchURL := d.baseURL + "/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deezer search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deezer search failed: status %d", resp.StatusCode)
	}

	var result deezerSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("deezer search failed: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, nil
	}

	track := pickTrackByYear(result.Data, year)
	d.cache.Set(ctx, cacheKey, track)
	return track, nil
}

// pickTrackByYear prefers a result released within two years of the
// expected year, falling back to the most relevant hit.
func pickTrackByYear(tracks []deezerTrack, year int) *deezerTrack {
	if year > 0 {
		for i := range tracks {
			release, err := time.Parse("2006-01-02", tracks[i].Album.ReleaseDate)
			if err != nil {
				continue
			}
			diff := release.Year() - year
			if diff >= -2 && diff <= 2 {
				return &tracks[i]
			}
		}
	}
	return &tracks[0]
}
