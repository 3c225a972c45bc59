package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"vidstash/models"
)

// videoRecord is the wire form of a video row in the "videos" table.
// Column names are snake_case at the boundary; the in-memory model is
// camelCase. The mapping is exact and total: every column has a model
// counterpart and vice versa, and responses carrying unknown columns
// are rejected rather than passed through.
type videoRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	IsPinned  bool      `json:"is_pinned"`
	AddedAt   time.Time `json:"added_at"`
	Notes     []string  `json:"notes"`
	BoardIDs  []string  `json:"board_ids"`
	Tags      []string  `json:"tags"`
	Views     int64     `json:"views"`
	Votes     int64     `json:"votes"`
}

func (r videoRecord) validate() error {
	if r.ID == "" {
		return fmt.Errorf("videos record missing id")
	}
	if r.UserID == "" {
		return fmt.Errorf("videos record %s missing user_id", r.ID)
	}
	if r.URL == "" {
		return fmt.Errorf("videos record %s missing url", r.ID)
	}
	if r.AddedAt.IsZero() {
		return fmt.Errorf("videos record %s missing added_at", r.ID)
	}
	return nil
}

func (r videoRecord) toModel() models.Video {
	v := models.Video{
		ID:        r.ID,
		URL:       r.URL,
		Title:     r.Title,
		Thumbnail: r.Thumbnail,
		IsPinned:  r.IsPinned,
		AddedAt:   r.AddedAt,
		Notes:     r.Notes,
		BoardIDs:  r.BoardIDs,
		Tags:      r.Tags,
		Views:     r.Views,
		Votes:     r.Votes,
	}
	if v.Notes == nil {
		v.Notes = []string{}
	}
	if v.BoardIDs == nil {
		v.BoardIDs = []string{}
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return v
}

func toVideoRecord(userID string, v models.Video) videoRecord {
	return videoRecord{
		ID:        v.ID,
		UserID:    userID,
		URL:       v.URL,
		Title:     v.Title,
		Thumbnail: v.Thumbnail,
		IsPinned:  v.IsPinned,
		AddedAt:   v.AddedAt,
		Notes:     v.Notes,
		BoardIDs:  v.BoardIDs,
		Tags:      v.Tags,
		Views:     v.Views,
		Votes:     v.Votes,
	}
}

// boardRecord is the wire form of a row in the "boards" table.
type boardRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (r boardRecord) validate() error {
	if r.ID == "" {
		return fmt.Errorf("boards record missing id")
	}
	if r.UserID == "" {
		return fmt.Errorf("boards record %s missing user_id", r.ID)
	}
	if r.Name == "" {
		return fmt.Errorf("boards record %s missing name", r.ID)
	}
	return nil
}

func (r boardRecord) toModel() models.Board {
	return models.Board{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

func toBoardRecord(userID string, b models.Board) boardRecord {
	return boardRecord{
		ID:        b.ID,
		UserID:    userID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
	}
}

func decodeVideoRecords(body []byte) ([]videoRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var recs []videoRecord
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode videos response: %w", err)
	}
	for i := range recs {
		if err := recs[i].validate(); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func decodeBoardRecords(body []byte) ([]boardRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var recs []boardRecord
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode boards response: %w", err)
	}
	for i := range recs {
		if err := recs[i].validate(); err != nil {
			return nil, err
		}
	}
	return recs, nil
}
