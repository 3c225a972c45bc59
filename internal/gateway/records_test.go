package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstash/internal/store"
	"vidstash/models"
)

func TestDecodeVideoRecords(t *testing.T) {
	body := []byte(`[{
		"id": "dQw4w9WgXcQ",
		"user_id": "user-1",
		"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"title": "Never Gonna Give You Up",
		"thumbnail": "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		"is_pinned": true,
		"added_at": "2026-08-01T12:00:00Z",
		"notes": ["watch later"],
		"board_ids": ["b1"],
		"tags": ["music"],
		"views": 3,
		"votes": 1
	}]`)

	recs, err := decodeVideoRecords(body)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	v := recs[0].toModel()
	assert.Equal(t, "dQw4w9WgXcQ", v.ID)
	assert.True(t, v.IsPinned)
	assert.Equal(t, []string{"watch later"}, v.Notes)
	assert.Equal(t, []string{"b1"}, v.BoardIDs)
	assert.Equal(t, []string{"music"}, v.Tags)
	assert.Equal(t, int64(3), v.Views)
}

func TestDecodeVideoRecordsRejectsUnknownColumn(t *testing.T) {
	body := []byte(`[{
		"id": "dQw4w9WgXcQ",
		"user_id": "user-1",
		"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"added_at": "2026-08-01T12:00:00Z",
		"surprise": "column"
	}]`)

	_, err := decodeVideoRecords(body)
	assert.Error(t, err)
}

func TestDecodeVideoRecordsRejectsMissingRequired(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing id", `[{"user_id":"u","url":"x","added_at":"2026-08-01T12:00:00Z"}]`},
		{"missing user_id", `[{"id":"v","url":"x","added_at":"2026-08-01T12:00:00Z"}]`},
		{"missing url", `[{"id":"v","user_id":"u","added_at":"2026-08-01T12:00:00Z"}]`},
		{"missing added_at", `[{"id":"v","user_id":"u","url":"x"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeVideoRecords([]byte(tc.body))
			assert.Error(t, err)
		})
	}
}

func TestNullListsBecomeEmptySets(t *testing.T) {
	body := []byte(`[{
		"id": "dQw4w9WgXcQ",
		"user_id": "user-1",
		"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"title": "t",
		"thumbnail": "",
		"is_pinned": false,
		"added_at": "2026-08-01T12:00:00Z",
		"notes": null,
		"board_ids": null,
		"tags": null,
		"views": 0,
		"votes": 0
	}]`)

	recs, err := decodeVideoRecords(body)
	require.NoError(t, err)

	v := recs[0].toModel()
	assert.NotNil(t, v.Notes)
	assert.NotNil(t, v.BoardIDs)
	assert.NotNil(t, v.Tags)
	assert.Empty(t, v.Notes)
}

func TestVideoRecordRoundTrip(t *testing.T) {
	v := models.Video{
		ID:        "abc12345678",
		URL:       "https://www.youtube.com/watch?v=abc12345678",
		Title:     "title",
		Thumbnail: "thumb",
		IsPinned:  true,
		AddedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Notes:     []string{"n"},
		BoardIDs:  []string{"b"},
		Tags:      []string{"t"},
		Views:     7,
		Votes:     2,
	}

	got := toVideoRecord("user-1", v).toModel()
	assert.Equal(t, v, got)
}

func TestDecodeBoardRecords(t *testing.T) {
	body := []byte(`[{
		"id": "b1",
		"user_id": "user-1",
		"name": "Research",
		"created_at": "2026-08-01T12:00:00Z"
	}]`)

	recs, err := decodeBoardRecords(body)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Research", recs[0].toModel().Name)
}

func TestDecodeBoardRecordsRejectsMissingName(t *testing.T) {
	body := []byte(`[{"id":"b1","user_id":"user-1","created_at":"2026-08-01T12:00:00Z"}]`)
	_, err := decodeBoardRecords(body)
	assert.Error(t, err)
}

func TestUpdatePayloadColumns(t *testing.T) {
	pinned := true
	notes := []string{"a"}
	views := int64(9)

	payload := updatePayload(store.VideoFields{
		IsPinned: &pinned,
		Notes:    &notes,
		Views:    &views,
	})

	assert.Equal(t, map[string]interface{}{
		"is_pinned": true,
		"notes":     []string{"a"},
		"views":     int64(9),
	}, payload)
}

func TestUpdatePayloadEmptyFields(t *testing.T) {
	assert.Empty(t, updatePayload(store.VideoFields{}))
}
