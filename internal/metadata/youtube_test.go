package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", r.URL.Query().Get("url"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Never Gonna Give You Up","author_name":"Rick Astley","thumbnail_url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}`))
	}))
	defer srv.Close()

	client := NewYouTubeClient(testLogger())
	client.baseURL = srv.URL

	meta, err := client.Resolve(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", meta.Title)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", meta.Thumbnail)
}

func TestResolveLookupFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewYouTubeClient(testLogger())
	client.baseURL = srv.URL

	_, err := client.Resolve(context.Background(), "dQw4w9WgXcQ")
	assert.Error(t, err)
}

func TestResolveEmptyTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":""}`))
	}))
	defer srv.Close()

	client := NewYouTubeClient(testLogger())
	client.baseURL = srv.URL

	_, err := client.Resolve(context.Background(), "dQw4w9WgXcQ")
	assert.Error(t, err)
}

func TestThumbnailURLIsDeterministic(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/abc12345678/hqdefault.jpg", ThumbnailURL("abc12345678"))
}
