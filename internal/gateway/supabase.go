// Package gateway implements the store's persistence interface on top
// of Supabase's PostgREST record API.
package gateway

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"vidstash/internal/store"
	"vidstash/models"
)

const (
	videosTable = "videos"
	boardsTable = "boards"
)

// Supabase talks to the two collection tables. Every call is scoped by
// the owning user id passed in from the store, never by cached state.
type Supabase struct {
	db     *supa.Client
	logger *logrus.Logger
}

// NewSupabase creates the gateway around an initialized Supabase client.
func NewSupabase(db *supa.Client, logger *logrus.Logger) *Supabase {
	return &Supabase{db: db, logger: logger}
}

// ListVideos returns every video owned by the user, newest first.
func (g *Supabase) ListVideos(ctx context.Context, userID string) ([]models.Video, error) {
	body, _, err := g.db.From(videosTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("added_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	recs, err := decodeVideoRecords(body)
	if err != nil {
		return nil, err
	}

	out := make([]models.Video, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.toModel())
	}

	g.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"count":   len(out),
	}).Debug("Fetched videos from gateway")
	return out, nil
}

// GetVideo reads one video by id. Returns store.ErrNotFound when the
// user owns no such record.
func (g *Supabase) GetVideo(ctx context.Context, userID, videoID string) (models.Video, error) {
	body, _, err := g.db.From(videosTable).
		Select("*", "", false).
		Eq("id", videoID).
		Eq("user_id", userID).
		ExecuteWithContext(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("get video %s: %w", videoID, err)
	}

	recs, err := decodeVideoRecords(body)
	if err != nil {
		return models.Video{}, err
	}
	if len(recs) == 0 {
		return models.Video{}, fmt.Errorf("get video %s: %w", videoID, store.ErrNotFound)
	}
	return recs[0].toModel(), nil
}

// InsertVideo writes a new video row. The insert asks for the row back
// so an empty response can be treated as a rejected write.
func (g *Supabase) InsertVideo(ctx context.Context, userID string, video models.Video) error {
	rec := toVideoRecord(userID, video)

	body, _, err := g.db.From(videosTable).
		Insert(rec, false, "", "representation", "").
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("insert video %s: %w", video.ID, err)
	}

	inserted, err := decodeVideoRecords(body)
	if err != nil {
		return err
	}
	if len(inserted) == 0 {
		return fmt.Errorf("insert video %s: no record returned", video.ID)
	}
	return nil
}

// UpdateVideo applies a field-level update. A fields value with nothing
// set is a no-op.
func (g *Supabase) UpdateVideo(ctx context.Context, userID, videoID string, fields store.VideoFields) error {
	payload := updatePayload(fields)
	if len(payload) == 0 {
		return nil
	}

	_, _, err := g.db.From(videosTable).
		Update(payload, "", "").
		Eq("id", videoID).
		Eq("user_id", userID).
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("update video %s: %w", videoID, err)
	}
	return nil
}

// DeleteVideo removes the user's video row by id.
func (g *Supabase) DeleteVideo(ctx context.Context, userID, videoID string) error {
	_, _, err := g.db.From(videosTable).
		Delete("", "").
		Eq("id", videoID).
		Eq("user_id", userID).
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("delete video %s: %w", videoID, err)
	}
	return nil
}

// ListBoards returns every board owned by the user.
func (g *Supabase) ListBoards(ctx context.Context, userID string) ([]models.Board, error) {
	body, _, err := g.db.From(boardsTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	recs, err := decodeBoardRecords(body)
	if err != nil {
		return nil, err
	}

	out := make([]models.Board, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.toModel())
	}
	return out, nil
}

// InsertBoard writes a new board row.
func (g *Supabase) InsertBoard(ctx context.Context, userID string, board models.Board) error {
	rec := toBoardRecord(userID, board)

	body, _, err := g.db.From(boardsTable).
		Insert(rec, false, "", "representation", "").
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("insert board %s: %w", board.ID, err)
	}

	inserted, err := decodeBoardRecords(body)
	if err != nil {
		return err
	}
	if len(inserted) == 0 {
		return fmt.Errorf("insert board %s: no record returned", board.ID)
	}
	return nil
}

// RenameBoard updates the board's name column.
func (g *Supabase) RenameBoard(ctx context.Context, userID, boardID, name string) error {
	payload := map[string]interface{}{"name": name}

	_, _, err := g.db.From(boardsTable).
		Update(payload, "", "").
		Eq("id", boardID).
		Eq("user_id", userID).
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("rename board %s: %w", boardID, err)
	}
	return nil
}

// DeleteBoard removes the board row. Stripping the board id from video
// memberships is the store's job; the two tables are not transactional.
func (g *Supabase) DeleteBoard(ctx context.Context, userID, boardID string) error {
	_, _, err := g.db.From(boardsTable).
		Delete("", "").
		Eq("id", boardID).
		Eq("user_id", userID).
		ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("delete board %s: %w", boardID, err)
	}
	return nil
}

// updatePayload translates set fields onto their snake_case columns.
func updatePayload(f store.VideoFields) map[string]interface{} {
	payload := make(map[string]interface{})
	if f.IsPinned != nil {
		payload["is_pinned"] = *f.IsPinned
	}
	if f.Notes != nil {
		payload["notes"] = *f.Notes
	}
	if f.BoardIDs != nil {
		payload["board_ids"] = *f.BoardIDs
	}
	if f.Tags != nil {
		payload["tags"] = *f.Tags
	}
	if f.Views != nil {
		payload["views"] = *f.Views
	}
	if f.Votes != nil {
		payload["votes"] = *f.Votes
	}
	return payload
}
