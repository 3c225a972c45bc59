package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"vidstash/internal/store"
	"vidstash/utils"
)

// AddVideoRequest defines the expected JSON structure for saving a video.
type AddVideoRequest struct {
	URL string `json:"url" validate:"required"`
}

// SetTabRequest selects the active collection view.
type SetTabRequest struct {
	Tab string `json:"tab" validate:"required"`
}

// ListVideos returns the filtered projection of the collection. An
// optional ?tab= switches the active view first; ?q= applies free-text
// search.
func (h *ApplicationHandler) ListVideos(c *fiber.Ctx) error {
	if raw := c.Query("tab"); raw != "" {
		tab, ok := store.ParseTab(raw)
		if !ok {
			return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown tab %q", raw))
		}
		if err := h.Store.SetActiveTab(tab); err != nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"videos":    h.Store.FilteredView(c.Query("q")),
		"activeTab": h.Store.ActiveTab(),
	})
}

// AddVideo saves a video pinned; the primary entry point.
func (h *ApplicationHandler) AddVideo(c *fiber.Ctx) error {
	payload := new(AddVideoRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	video, err := h.Store.AddVideo(c.Context(), payload.URL)
	if err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, video)
}

// ImportVideo saves a video without pinning it; the secondary entry
// point.
func (h *ApplicationHandler) ImportVideo(c *fiber.Ctx) error {
	payload := new(AddVideoRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	video, err := h.Store.ImportVideo(c.Context(), payload.URL)
	if err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, video)
}

// DeleteVideo removes a video from the collection.
func (h *ApplicationHandler) DeleteVideo(c *fiber.Ctx) error {
	videoID := c.Params("id")

	if err := h.Store.DeleteVideo(c.Context(), videoID); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": fmt.Sprintf("Video %s deleted", videoID),
	})
}

// TogglePin flips a video's pin flag and reports the new value.
func (h *ApplicationHandler) TogglePin(c *fiber.Ctx) error {
	videoID := c.Params("id")

	pinned, err := h.Store.TogglePin(c.Context(), videoID)
	if err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"isPinned": pinned,
	})
}

// SetActiveTab switches the active collection view.
func (h *ApplicationHandler) SetActiveTab(c *fiber.Ctx) error {
	payload := new(SetTabRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	tab, ok := store.ParseTab(payload.Tab)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown tab %q", payload.Tab))
	}
	if err := h.Store.SetActiveTab(tab); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"activeTab": tab,
	})
}
