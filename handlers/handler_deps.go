package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"vidstash/internal/session"
	"vidstash/internal/store"
	"vidstash/utils"
)

var validate = validator.New()

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Store    *store.Store
	Sessions *session.Manager
	DB       *supa.Client
	Logger   *logrus.Logger
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(st *store.Store, sessions *session.Manager, db *supa.Client, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Store:    st,
		Sessions: sessions,
		DB:       db,
		Logger:   logger,
	}
}

// respondStoreError maps store errors onto HTTP statuses.
func (h *ApplicationHandler) respondStoreError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, store.ErrInvalidReference), errors.Is(err, store.ErrEmptyName):
		status = fiber.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		status = fiber.StatusConflict
	case store.IsPersistenceFailure(err):
		status = fiber.StatusBadGateway
	}
	return utils.RespondWithError(c, status, err.Error())
}
