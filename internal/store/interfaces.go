package store

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"vidstash/internal/metadata"
	"vidstash/internal/session"
	"vidstash/models"
)

// VideoFields is a partial, field-level update for a video record.
// Nil fields are left untouched by the gateway; set fields replace the
// stored value wholesale.
type VideoFields struct {
	IsPinned *bool
	Notes    *[]string
	BoardIDs *[]string
	Tags     *[]string
	Views    *int64
	Votes    *int64
}

// Gateway is the remote persistence service backing the store: two
// record tables ("videos", "boards") scoped by the owning user. The
// store treats it as an at-least-once, possibly-failing record store
// and never assumes transactionality across the two tables.
type Gateway interface {
	ListVideos(ctx context.Context, userID string) ([]models.Video, error)
	GetVideo(ctx context.Context, userID, videoID string) (models.Video, error)
	InsertVideo(ctx context.Context, userID string, video models.Video) error
	UpdateVideo(ctx context.Context, userID, videoID string, fields VideoFields) error
	DeleteVideo(ctx context.Context, userID, videoID string) error

	ListBoards(ctx context.Context, userID string) ([]models.Board, error)
	InsertBoard(ctx context.Context, userID string, board models.Board) error
	RenameBoard(ctx context.Context, userID, boardID, name string) error
	DeleteBoard(ctx context.Context, userID, boardID string) error
}

// MetadataResolver looks up display metadata for a video id. Treated as
// best effort; a failed lookup never blocks video creation.
type MetadataResolver interface {
	Resolve(ctx context.Context, videoID string) (metadata.Metadata, error)
}

// SessionSource yields the identity for the current call. Queried per
// operation rather than cached, so the store never acts under a stale
// identity after sign-out/sign-in.
type SessionSource interface {
	Current() (session.Session, error)
}
