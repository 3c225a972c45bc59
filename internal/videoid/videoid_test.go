package videoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"canonical", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with params", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"extra query params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLx&index=2", "dQw4w9WgXcQ"},
		{"whitespace", "  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Extract(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Short and canonical links for the same video must yield the same id,
// so re-adding through a different link form lands on the same record.
func TestExtractSameVideoDifferentForms(t *testing.T) {
	short, err := Extract("https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	long, err := Extract("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, short, long)
}

func TestExtractRejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"wrong host", "https://vimeo.com/123456789"},
		{"watch without v", "https://www.youtube.com/watch?list=PLx"},
		{"channel page", "https://www.youtube.com/@somechannel"},
		{"id too short", "dQw4w9WgXc"},
		{"id with bad chars", "dQw4w9WgXc!"},
		{"plain text", "not a link at all"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Extract(tc.raw)
			assert.ErrorIs(t, err, ErrNoVideoID)
		})
	}
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
}
