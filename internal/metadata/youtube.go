// Package metadata resolves display metadata for a saved video. The
// lookup is best effort: the collection never refuses a video because
// the title could not be fetched.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"vidstash/internal/videoid"
)

const (
	oembedBaseURL = "https://www.youtube.com/oembed"

	// PlaceholderTitle is used when the oEmbed lookup fails.
	PlaceholderTitle = "Untitled video"
)

// Metadata is the descriptive information resolved once at video
// creation time.
type Metadata struct {
	Title     string
	Thumbnail string
}

// ThumbnailURL constructs the thumbnail location for a video id. It is
// derived deterministically and does not depend on the lookup
// succeeding.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}

// YouTubeClient resolves titles through the public oEmbed endpoint.
type YouTubeClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

// NewYouTubeClient creates a resolver with a bounded request timeout so
// a hung lookup cannot stall video creation indefinitely.
func NewYouTubeClient(logger *logrus.Logger) *YouTubeClient {
	return &YouTubeClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: oembedBaseURL,
		logger:  logger,
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Resolve returns the title and thumbnail for a video id. The thumbnail
// is always the canonically constructed URL; only the title depends on
// the remote lookup.
func (c *YouTubeClient) Resolve(ctx context.Context, videoID string) (Metadata, error) {
	params := url.Values{}
	params.Set("url", videoid.WatchURL(videoID))
	params.Set("format", "json")

	lookupURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("create oembed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("oembed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("oembed lookup failed: status %d", resp.StatusCode)
	}

	var parsed oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Metadata{}, fmt.Errorf("parse oembed response: %w", err)
	}

	if parsed.Title == "" {
		return Metadata{}, fmt.Errorf("oembed response had no title for %s", videoID)
	}

	c.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"title":    parsed.Title,
	}).Debug("Resolved video metadata")

	return Metadata{
		Title:     parsed.Title,
		Thumbnail: ThumbnailURL(videoID),
	}, nil
}
