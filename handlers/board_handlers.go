package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"vidstash/utils"
)

// BoardRequest carries a board's display name.
type BoardRequest struct {
	Name string `json:"name" validate:"required"`
}

// BoardVideoRequest attaches a video to a board, e.g. after a
// drag-and-drop in the UI.
type BoardVideoRequest struct {
	VideoID string `json:"videoId" validate:"required"`
}

// ListBoards returns the user's boards.
func (h *ApplicationHandler) ListBoards(c *fiber.Ctx) error {
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"boards": h.Store.Boards(),
	})
}

// CreateBoard creates a board and returns it, id included, so the
// caller can attach videos right away.
func (h *ApplicationHandler) CreateBoard(c *fiber.Ctx) error {
	payload := new(BoardRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	board, err := h.Store.AddBoard(c.Context(), payload.Name)
	if err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, board)
}

// RenameBoard updates a board's display name.
func (h *ApplicationHandler) RenameBoard(c *fiber.Ctx) error {
	payload := new(BoardRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	if err := h.Store.RenameBoard(c.Context(), c.Params("id"), payload.Name); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Board renamed",
	})
}

// DeleteBoard removes a board and strips it from every video's
// membership set.
func (h *ApplicationHandler) DeleteBoard(c *fiber.Ctx) error {
	boardID := c.Params("id")

	if err := h.Store.DeleteBoard(c.Context(), boardID); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": fmt.Sprintf("Board %s deleted", boardID),
	})
}

// AddVideoToBoard adds a video to a board's membership set.
func (h *ApplicationHandler) AddVideoToBoard(c *fiber.Ctx) error {
	payload := new(BoardVideoRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	if err := h.Store.AddToBoard(c.Context(), payload.VideoID, c.Params("id")); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Video added to board",
	})
}

// RemoveVideoFromBoard strips a video from a board's membership set.
func (h *ApplicationHandler) RemoveVideoFromBoard(c *fiber.Ctx) error {
	if err := h.Store.RemoveFromBoard(c.Context(), c.Params("videoId"), c.Params("id")); err != nil {
		return h.respondStoreError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Video removed from board",
	})
}
