// Package store holds the authoritative in-memory collection of a
// user's videos and boards and keeps it consistent with the
// persistence gateway.
//
// Every mutation is two-phase: the new value is computed from the
// current state, persisted through the gateway first, and applied to
// memory only after the gateway accepted it. A failed gateway call
// therefore leaves memory at its pre-call value and is surfaced to the
// caller, never swallowed. Overlapping calls against the same record
// are not sequenced beyond that: the last write to complete wins.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidstash/internal/metadata"
	"vidstash/internal/videoid"
	"vidstash/models"
)

// DuplicatePolicy decides what the add-video path does when the derived
// id is already in the collection.
type DuplicatePolicy string

const (
	// DuplicateIgnore makes re-adding a no-op returning the existing record.
	DuplicateIgnore DuplicatePolicy = "ignore"
	// DuplicateError rejects the add with ErrDuplicate.
	DuplicateError DuplicatePolicy = "error"
	// DuplicateInsert tolerates a second record with the same id.
	DuplicateInsert DuplicatePolicy = "insert"
)

// ParseDuplicatePolicy maps a config string onto a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case DuplicateIgnore, DuplicatePolicy(""):
		return DuplicateIgnore, true
	case DuplicateError:
		return DuplicateError, true
	case DuplicateInsert:
		return DuplicateInsert, true
	}
	return "", false
}

const defaultCallTimeout = 15 * time.Second

// Options tune store behavior.
type Options struct {
	// CallTimeout bounds every gateway round trip so a hung call cannot
	// stall an operation indefinitely. Defaults to 15s.
	CallTimeout time.Duration
	// Duplicates is the add-video policy for ids already present.
	// Defaults to DuplicateIgnore.
	Duplicates DuplicatePolicy
}

// Store is the collection store. One instance is created at application
// startup and shared by every consumer; only the store mutates the
// collection, consumers read snapshots or invoke operations.
type Store struct {
	mu     sync.Mutex
	videos []models.Video
	boards []models.Board
	tab    Tab

	gateway  Gateway
	resolver MetadataResolver
	sessions SessionSource
	logger   *logrus.Logger
	opts     Options
}

// New creates a Store with empty collections and the recent tab active.
func New(gateway Gateway, resolver MetadataResolver, sessions SessionSource, logger *logrus.Logger, opts Options) *Store {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}
	if opts.Duplicates == "" {
		opts.Duplicates = DuplicateIgnore
	}
	return &Store{
		videos:   []models.Video{},
		boards:   []models.Board{},
		tab:      TabRecent,
		gateway:  gateway,
		resolver: resolver,
		sessions: sessions,
		logger:   logger,
		opts:     opts,
	}
}

func (s *Store) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.CallTimeout)
}

// owner resolves the identity for this call. Resolved per operation so
// a sign-out between calls is respected immediately.
func (s *Store) owner() (string, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return "", ErrUnauthenticated
	}
	return sess.UserID, nil
}

// findVideo returns a pointer into the videos slice. Callers must hold
// s.mu and must not retain the pointer past the unlock.
func (s *Store) findVideo(videoID string) *models.Video {
	for i := range s.videos {
		if s.videos[i].ID == videoID {
			return &s.videos[i]
		}
	}
	return nil
}

func (s *Store) findBoard(boardID string) *models.Board {
	for i := range s.boards {
		if s.boards[i].ID == boardID {
			return &s.boards[i]
		}
	}
	return nil
}

// FetchAll replaces the entire in-memory collection with the gateway's
// view of it. This is a full resync, not a merge. On failure memory is
// reset to empty collections and the error is surfaced; the store stays
// usable but the caller must treat it as a degraded/retry state.
func (s *Store) FetchAll(ctx context.Context) error {
	userID, err := s.owner()
	if err != nil {
		return err
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	videos, verr := s.gateway.ListVideos(cctx, userID)
	var boards []models.Board
	berr := verr
	if verr == nil {
		boards, berr = s.gateway.ListBoards(cctx, userID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if berr != nil {
		s.videos = []models.Video{}
		s.boards = []models.Board{}
		return persistence("fetch collection", berr)
	}

	if videos == nil {
		videos = []models.Video{}
	}
	if boards == nil {
		boards = []models.Board{}
	}
	s.videos = videos
	s.boards = boards

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"videos":  len(videos),
		"boards":  len(boards),
	}).Info("Collection loaded")
	return nil
}

// AddVideo saves the video behind rawURL, pinned. This is the primary
// entry point; ImportVideo is the unpinned variant.
func (s *Store) AddVideo(ctx context.Context, rawURL string) (models.Video, error) {
	return s.addVideo(ctx, rawURL, true)
}

// ImportVideo saves the video behind rawURL without pinning it.
func (s *Store) ImportVideo(ctx context.Context, rawURL string) (models.Video, error) {
	return s.addVideo(ctx, rawURL, false)
}

func (s *Store) addVideo(ctx context.Context, rawURL string, pinned bool) (models.Video, error) {
	userID, err := s.owner()
	if err != nil {
		return models.Video{}, err
	}

	id, err := videoid.Extract(rawURL)
	if err != nil {
		return models.Video{}, fmt.Errorf("%w: %q", ErrInvalidReference, rawURL)
	}

	s.mu.Lock()
	existing := s.findVideo(id)
	var existingCopy models.Video
	if existing != nil {
		existingCopy = existing.Clone()
	}
	s.mu.Unlock()

	if existing != nil {
		switch s.opts.Duplicates {
		case DuplicateError:
			return models.Video{}, fmt.Errorf("%w: %s", ErrDuplicate, id)
		case DuplicateInsert:
			// duplicate-tolerant: fall through and insert a second record
		default:
			return existingCopy, nil
		}
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	meta, err := s.resolver.Resolve(cctx, id)
	if err != nil {
		// Best effort: a dead lookup service must not block the add.
		s.logger.WithFields(logrus.Fields{
			"video_id": id,
			"error":    err.Error(),
		}).Warn("Metadata lookup failed, using placeholder title")
		meta = metadata.Metadata{
			Title:     metadata.PlaceholderTitle,
			Thumbnail: metadata.ThumbnailURL(id),
		}
	}

	video := models.Video{
		ID:        id,
		URL:       videoid.WatchURL(id),
		Title:     meta.Title,
		Thumbnail: meta.Thumbnail,
		IsPinned:  pinned,
		AddedAt:   time.Now().UTC(),
		Notes:     []string{},
		BoardIDs:  []string{},
		Tags:      []string{},
	}

	if err := s.gateway.InsertVideo(cctx, userID, video); err != nil {
		return models.Video{}, persistence("add video", err)
	}

	s.mu.Lock()
	s.videos = append([]models.Video{video}, s.videos...)
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"video_id": id,
		"pinned":   pinned,
	}).Info("Video added")
	return video.Clone(), nil
}

// DeleteVideo removes the video from the gateway and then from memory.
// If the gateway call fails the video stays in memory untouched.
func (s *Store) DeleteVideo(ctx context.Context, videoID string) error {
	userID, err := s.owner()
	if err != nil {
		return err
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	if err := s.gateway.DeleteVideo(cctx, userID, videoID); err != nil {
		return persistence("delete video", err)
	}

	s.mu.Lock()
	for i := range s.videos {
		if s.videos[i].ID == videoID {
			s.videos = append(s.videos[:i], s.videos[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// TogglePin flips the pin flag. The current value is read back from the
// gateway rather than memory so a concurrent edit from another tab is
// not clobbered with a stale negation.
func (s *Store) TogglePin(ctx context.Context, videoID string) (bool, error) {
	userID, err := s.owner()
	if err != nil {
		return false, err
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	current, err := s.gateway.GetVideo(cctx, userID, videoID)
	if err != nil {
		if isNotFound(err) {
			return false, fmt.Errorf("%w: video %s", ErrNotFound, videoID)
		}
		return false, persistence("toggle pin", err)
	}

	next := !current.IsPinned
	if err := s.gateway.UpdateVideo(cctx, userID, videoID, VideoFields{IsPinned: &next}); err != nil {
		return false, persistence("toggle pin", err)
	}

	s.mu.Lock()
	if v := s.findVideo(videoID); v != nil {
		v.IsPinned = next
	}
	s.mu.Unlock()
	return next, nil
}

// updateVideoField is the shared two-phase path for note, tag and board
// membership edits: compute the replacement field from a snapshot,
// persist it, then apply it to memory. When change reports no change
// the operation is an idempotent no-op and nothing is persisted.
func (s *Store) updateVideoField(ctx context.Context, op, videoID string, change func(v models.Video) (VideoFields, bool)) error {
	userID, err := s.owner()
	if err != nil {
		return err
	}

	s.mu.Lock()
	v := s.findVideo(videoID)
	if v == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: video %s", ErrNotFound, videoID)
	}
	snapshot := v.Clone()
	s.mu.Unlock()

	fields, changed := change(snapshot)
	if !changed {
		return nil
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	if err := s.gateway.UpdateVideo(cctx, userID, videoID, fields); err != nil {
		return persistence(op, err)
	}

	s.mu.Lock()
	if v := s.findVideo(videoID); v != nil {
		applyFields(v, fields)
	}
	s.mu.Unlock()
	return nil
}

func applyFields(v *models.Video, f VideoFields) {
	if f.IsPinned != nil {
		v.IsPinned = *f.IsPinned
	}
	if f.Notes != nil {
		v.Notes = append([]string(nil), (*f.Notes)...)
	}
	if f.BoardIDs != nil {
		v.BoardIDs = append([]string(nil), (*f.BoardIDs)...)
	}
	if f.Tags != nil {
		v.Tags = append([]string(nil), (*f.Tags)...)
	}
	if f.Views != nil {
		v.Views = *f.Views
	}
	if f.Votes != nil {
		v.Votes = *f.Votes
	}
}

// AddNote appends a note to the video's ordered note list.
func (s *Store) AddNote(ctx context.Context, videoID, text string) error {
	return s.updateVideoField(ctx, "add note", videoID, func(v models.Video) (VideoFields, bool) {
		notes := append(append([]string(nil), v.Notes...), text)
		return VideoFields{Notes: &notes}, true
	})
}

// UpdateNote replaces the note at index. An out-of-range index is
// ignored; note indices shift on delete, so callers re-read rather
// than cache them.
func (s *Store) UpdateNote(ctx context.Context, videoID string, index int, text string) error {
	return s.updateVideoField(ctx, "update note", videoID, func(v models.Video) (VideoFields, bool) {
		if index < 0 || index >= len(v.Notes) {
			return VideoFields{}, false
		}
		notes := append([]string(nil), v.Notes...)
		notes[index] = text
		return VideoFields{Notes: &notes}, true
	})
}

// DeleteNote removes the note at index, shifting later notes down by
// one. An out-of-range index is ignored.
func (s *Store) DeleteNote(ctx context.Context, videoID string, index int) error {
	return s.updateVideoField(ctx, "delete note", videoID, func(v models.Video) (VideoFields, bool) {
		if index < 0 || index >= len(v.Notes) {
			return VideoFields{}, false
		}
		notes := append([]string(nil), v.Notes...)
		notes = append(notes[:index], notes[index+1:]...)
		return VideoFields{Notes: &notes}, true
	})
}

// AddTag inserts the tag if absent. Adding an existing tag is a no-op.
func (s *Store) AddTag(ctx context.Context, videoID, tag string) error {
	return s.updateVideoField(ctx, "add tag", videoID, func(v models.Video) (VideoFields, bool) {
		if v.HasTag(tag) {
			return VideoFields{}, false
		}
		tags := append(append([]string(nil), v.Tags...), tag)
		return VideoFields{Tags: &tags}, true
	})
}

// RemoveTag removes the tag if present.
func (s *Store) RemoveTag(ctx context.Context, videoID, tag string) error {
	return s.updateVideoField(ctx, "remove tag", videoID, func(v models.Video) (VideoFields, bool) {
		if !v.HasTag(tag) {
			return VideoFields{}, false
		}
		tags := make([]string, 0, len(v.Tags)-1)
		for _, t := range v.Tags {
			if t != tag {
				tags = append(tags, t)
			}
		}
		return VideoFields{Tags: &tags}, true
	})
}

// AddBoard creates a board. The id is generated client-side and
// available to the caller as soon as the call returns, so a video can
// be attached to the new board immediately.
func (s *Store) AddBoard(ctx context.Context, name string) (models.Board, error) {
	userID, err := s.owner()
	if err != nil {
		return models.Board{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Board{}, ErrEmptyName
	}

	board := models.Board{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	if err := s.gateway.InsertBoard(cctx, userID, board); err != nil {
		return models.Board{}, persistence("add board", err)
	}

	s.mu.Lock()
	s.boards = append(s.boards, board)
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"board_id": board.ID,
		"name":     name,
	}).Info("Board created")
	return board, nil
}

// RenameBoard updates the board's display label. The new name must be
// non-empty.
func (s *Store) RenameBoard(ctx context.Context, boardID, name string) error {
	userID, err := s.owner()
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	exists := s.findBoard(boardID) != nil
	s.mu.Unlock()
	if !exists {
		return fmt.Errorf("%w: board %s", ErrNotFound, boardID)
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	if err := s.gateway.RenameBoard(cctx, userID, boardID, name); err != nil {
		return persistence("rename board", err)
	}

	s.mu.Lock()
	if b := s.findBoard(boardID); b != nil {
		b.Name = name
	}
	s.mu.Unlock()
	return nil
}

// DeleteBoard removes the board and strips its id from every video's
// membership set. The memberships are persisted before the board record
// is deleted and the in-memory cascade is applied in one step, so no
// consumer ever observes a dangling board reference.
func (s *Store) DeleteBoard(ctx context.Context, boardID string) error {
	userID, err := s.owner()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.findBoard(boardID) == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: board %s", ErrNotFound, boardID)
	}
	type membership struct {
		videoID string
		ids     []string
	}
	var trims []membership
	for i := range s.videos {
		if !s.videos[i].HasBoard(boardID) {
			continue
		}
		ids := make([]string, 0, len(s.videos[i].BoardIDs)-1)
		for _, id := range s.videos[i].BoardIDs {
			if id != boardID {
				ids = append(ids, id)
			}
		}
		trims = append(trims, membership{videoID: s.videos[i].ID, ids: ids})
	}
	s.mu.Unlock()

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	for _, t := range trims {
		ids := t.ids
		if err := s.gateway.UpdateVideo(cctx, userID, t.videoID, VideoFields{BoardIDs: &ids}); err != nil {
			return persistence("delete board", err)
		}
	}

	if err := s.gateway.DeleteBoard(cctx, userID, boardID); err != nil {
		return persistence("delete board", err)
	}

	s.mu.Lock()
	for i := range s.videos {
		if !s.videos[i].HasBoard(boardID) {
			continue
		}
		ids := make([]string, 0, len(s.videos[i].BoardIDs)-1)
		for _, id := range s.videos[i].BoardIDs {
			if id != boardID {
				ids = append(ids, id)
			}
		}
		s.videos[i].BoardIDs = ids
	}
	for i := range s.boards {
		if s.boards[i].ID == boardID {
			s.boards = append(s.boards[:i], s.boards[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.logger.WithField("board_id", boardID).Info("Board deleted")
	return nil
}

// AddToBoard adds the video to the board's membership set. Membership
// is a set: adding an existing membership is a no-op. The board must
// exist, keeping every stored board id a live reference.
func (s *Store) AddToBoard(ctx context.Context, videoID, boardID string) error {
	s.mu.Lock()
	exists := s.findBoard(boardID) != nil
	s.mu.Unlock()
	if !exists {
		return fmt.Errorf("%w: board %s", ErrNotFound, boardID)
	}

	return s.updateVideoField(ctx, "add to board", videoID, func(v models.Video) (VideoFields, bool) {
		if v.HasBoard(boardID) {
			return VideoFields{}, false
		}
		ids := append(append([]string(nil), v.BoardIDs...), boardID)
		return VideoFields{BoardIDs: &ids}, true
	})
}

// RemoveFromBoard strips the board from the video's membership set.
func (s *Store) RemoveFromBoard(ctx context.Context, videoID, boardID string) error {
	return s.updateVideoField(ctx, "remove from board", videoID, func(v models.Video) (VideoFields, bool) {
		if !v.HasBoard(boardID) {
			return VideoFields{}, false
		}
		ids := make([]string, 0, len(v.BoardIDs)-1)
		for _, id := range v.BoardIDs {
			if id != boardID {
				ids = append(ids, id)
			}
		}
		return VideoFields{BoardIDs: &ids}, true
	})
}

// ClearState resets the collection and the active tab. Invoked on
// sign-out; nothing from the previous user survives into the next
// session.
func (s *Store) ClearState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos = []models.Video{}
	s.boards = []models.Board{}
	s.tab = TabRecent
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
