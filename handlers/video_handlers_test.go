package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"vidstash/internal/metadata"
	"vidstash/internal/session"
	"vidstash/internal/store"
	"vidstash/internal/store/mocks"
	"vidstash/models"
)

type handlerFixture struct {
	gateway  *mocks.MockGateway
	resolver *mocks.MockMetadataResolver
	sessions *session.Manager
	store    *store.Store
	app      *fiber.App
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	ctrl := gomock.NewController(t)

	gw := mocks.NewMockGateway(ctrl)
	resolver := mocks.NewMockMetadataResolver(ctrl)
	sessions := session.NewManager()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	st := store.New(gw, resolver, sessions, logger, store.Options{CallTimeout: time.Second})
	h := NewApplicationHandler(st, sessions, nil, logger)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/videos", h.ListVideos)
	apiV1.Post("/videos", h.AddVideo)
	apiV1.Post("/videos/import", h.ImportVideo)
	apiV1.Delete("/videos/:id", h.DeleteVideo)
	apiV1.Post("/videos/:id/toggle-pin", h.TogglePin)
	apiV1.Post("/videos/:id/tags", h.AddTag)
	apiV1.Get("/boards", h.ListBoards)
	apiV1.Post("/boards", h.CreateBoard)
	apiV1.Post("/boards/:id/videos", h.AddVideoToBoard)
	apiV1.Put("/view/tab", h.SetActiveTab)

	return &handlerFixture{
		gateway:  gw,
		resolver: resolver,
		sessions: sessions,
		store:    st,
		app:      app,
	}
}

func (f *handlerFixture) signIn(t *testing.T) {
	f.sessions.Set(session.Session{UserID: "user-1", Email: "a@example.com"})
}

func (f *handlerFixture) seed(t *testing.T, videos []models.Video, boards []models.Board) {
	f.gateway.EXPECT().ListVideos(gomock.Any(), "user-1").Return(videos, nil)
	f.gateway.EXPECT().ListBoards(gomock.Any(), "user-1").Return(boards, nil)
	require.NoError(t, f.store.FetchAll(context.Background()))
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAddVideoEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)

	f.resolver.EXPECT().Resolve(gomock.Any(), "dQw4w9WgXcQ").
		Return(metadata.Metadata{Title: "Never Gonna Give You Up", Thumbnail: "thumb"}, nil)
	f.gateway.EXPECT().InsertVideo(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/api/v1/videos", fiber.Map{
		"url": "https://youtu.be/dQw4w9WgXcQ",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "dQw4w9WgXcQ", data["id"])
	assert.Equal(t, true, data["isPinned"])
}

func TestAddVideoEndpointInvalidURL(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/api/v1/videos", fiber.Map{
		"url": "https://vimeo.com/12345",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddVideoEndpointUnauthenticated(t *testing.T) {
	f := newHandlerFixture(t)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/api/v1/videos", fiber.Map{
		"url": "https://youtu.be/dQw4w9WgXcQ",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAddVideoEndpointMissingURL(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/api/v1/videos", fiber.Map{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportVideoEndpointUnpinned(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)

	f.resolver.EXPECT().Resolve(gomock.Any(), "dQw4w9WgXcQ").
		Return(metadata.Metadata{Title: "t"}, nil)
	f.gateway.EXPECT().InsertVideo(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/api/v1/videos/import", fiber.Map{
		"url": "dQw4w9WgXcQ",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, false, data["isPinned"])
}

func TestDeleteVideoEndpointGatewayFailure(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)
	f.seed(t, []models.Video{{ID: "aaaaaaaaaaa", URL: "u", AddedAt: time.Now()}}, nil)

	f.gateway.EXPECT().DeleteVideo(gomock.Any(), "user-1", "aaaaaaaaaaa").
		Return(errors.New("gateway down"))

	resp, err := f.app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/videos/aaaaaaaaaaa", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// The video survives the failed delete.
	assert.Len(t, f.store.Videos(), 1)
}

func TestTogglePinEndpointNotFound(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)

	f.gateway.EXPECT().GetVideo(gomock.Any(), "user-1", "missing-vid1").
		Return(models.Video{}, store.ErrNotFound)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/videos/missing-vid1/toggle-pin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListVideosEndpointWithTabAndQuery(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)

	pinned := models.Video{ID: "aaaaaaaaaaa", URL: "u", Title: "Go talk", IsPinned: true, AddedAt: time.Now()}
	other := models.Video{ID: "bbbbbbbbbbb", URL: "u", Title: "Cooking", AddedAt: time.Now()}
	f.seed(t, []models.Video{pinned, other}, nil)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/videos?tab=pinned&q=go", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	videos := data["videos"].([]any)
	require.Len(t, videos, 1)
	assert.Equal(t, "aaaaaaaaaaa", videos[0].(map[string]any)["id"])
	assert.Equal(t, "pinned", data["activeTab"])
}

func TestListVideosEndpointUnknownTab(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/videos?tab=favorites", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateBoardEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)

	f.gateway.EXPECT().InsertBoard(gomock.Any(), "user-1", gomock.Any()).Return(nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/api/v1/boards", fiber.Map{
		"name": "Research",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Research", data["name"])
}

func TestAddVideoToBoardEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.signIn(t)
	f.seed(t,
		[]models.Video{{ID: "aaaaaaaaaaa", URL: "u", AddedAt: time.Now(), BoardIDs: []string{}}},
		[]models.Board{{ID: "b1", Name: "Research"}},
	)

	f.gateway.EXPECT().UpdateVideo(gomock.Any(), "user-1", "aaaaaaaaaaa", gomock.Any()).Return(nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/api/v1/boards/b1/videos", fiber.Map{
		"videoId": "aaaaaaaaaaa",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"b1"}, f.store.Videos()[0].BoardIDs)
}

func TestSetActiveTabEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	resp, err := f.app.Test(jsonRequest(http.MethodPut, "/api/v1/view/tab", fiber.Map{
		"tab": "notes",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, store.TabNotes, f.store.ActiveTab())
}
