package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"vidstash/utils"
)

// NoteRequest carries the free-text body of a note.
type NoteRequest struct {
	Text string `json:"text" validate:"required"`
}

// TagRequest carries a tag label.
type TagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

// AddNote appends a note to a video.
func (h *ApplicationHandler) AddNote(c *fiber.Ctx) error {
	payload := new(NoteRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	if err := h.Store.AddNote(c.Context(), c.Params("id"), payload.Text); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, fiber.Map{
		"message": "Note added",
	})
}

// UpdateNote replaces the note at the given index.
func (h *ApplicationHandler) UpdateNote(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Note index must be an integer")
	}

	payload := new(NoteRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	if err := h.Store.UpdateNote(c.Context(), c.Params("id"), index, payload.Text); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Note updated",
	})
}

// DeleteNote removes the note at the given index.
func (h *ApplicationHandler) DeleteNote(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Note index must be an integer")
	}

	if err := h.Store.DeleteNote(c.Context(), c.Params("id"), index); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Note deleted",
	})
}

// AddTag attaches a tag to a video. Adding an existing tag is a no-op.
func (h *ApplicationHandler) AddTag(c *fiber.Ctx) error {
	payload := new(TagRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	if err := h.Store.AddTag(c.Context(), c.Params("id"), payload.Tag); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, fiber.Map{
		"message": "Tag added",
	})
}

// RemoveTag strips a tag from a video. The tag travels in the path and
// may be URL-encoded.
func (h *ApplicationHandler) RemoveTag(c *fiber.Ctx) error {
	tag, err := url.PathUnescape(c.Params("tag"))
	if err != nil || tag == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid tag")
	}

	if err := h.Store.RemoveTag(c.Context(), c.Params("id"), tag); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Tag removed",
	})
}
