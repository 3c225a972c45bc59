package models

import (
	"time"
)

// Video represents one saved video in a user's collection.
// This is the in-memory shape handed to UI consumers; the persistence
// gateway owns the snake_case wire form and translates both ways.
type Video struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	IsPinned  bool      `json:"isPinned"`
	AddedAt   time.Time `json:"addedAt"`
	Notes     []string  `json:"notes"`
	BoardIDs  []string  `json:"boardIds"`
	Tags      []string  `json:"tags"`
	Views     int64     `json:"views"`
	Votes     int64     `json:"votes"`
}

// Clone returns a deep copy of the video. The store hands out clones so
// that consumers can never mutate the canonical collection through a
// shared slice header.
func (v Video) Clone() Video {
	out := v
	out.Notes = append([]string(nil), v.Notes...)
	out.BoardIDs = append([]string(nil), v.BoardIDs...)
	out.Tags = append([]string(nil), v.Tags...)
	return out
}

// HasBoard reports whether the video is a member of the given board.
// BoardIDs has set semantics; membership checks go through here rather
// than scanning the slice at call sites.
func (v Video) HasBoard(boardID string) bool {
	for _, id := range v.BoardIDs {
		if id == boardID {
			return true
		}
	}
	return false
}

// HasTag reports whether the video already carries the given tag.
// Tags are case-sensitive.
func (v Video) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
