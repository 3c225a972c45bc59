package models

import (
	"time"
)

// Board is a named grouping of videos. Membership lives on the video
// side (Video.BoardIDs); a board record is just id, label and creation
// time.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
