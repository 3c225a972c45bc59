package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"vidstash/internal/session"
	"vidstash/utils"
)

// SignInRequest defines the expected JSON structure for signing in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignIn authenticates against Supabase, installs the session and
// loads the user's collection into the store.
func (h *ApplicationHandler) SignIn(c *fiber.Ctx) error {
	payload := new(SignInRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %v", utils.FormatValidationErrors(err)))
	}

	authSession, err := h.DB.SignInWithEmailPassword(payload.Email, payload.Password)
	if err != nil {
		h.Logger.WithField("email", payload.Email).Warnf("Sign-in rejected: %v", err)
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	h.Sessions.Set(session.Session{
		UserID:      authSession.User.ID.String(),
		Email:       authSession.User.Email,
		AccessToken: authSession.AccessToken,
	})

	if err := h.Store.FetchAll(c.Context()); err != nil {
		// Signed in but the collection could not be loaded; the caller
		// should retry the load rather than re-authenticate.
		h.Logger.Errorf("Collection load after sign-in failed: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadGateway, "Signed in, but loading the collection failed; retry the fetch")
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"userId": authSession.User.ID.String(),
		"email":  authSession.User.Email,
	})
}

// SignOut drops the session and releases the previous user's data.
func (h *ApplicationHandler) SignOut(c *fiber.Ctx) error {
	if err := h.DB.Auth.Logout(); err != nil {
		// Best effort; the local session is cleared regardless.
		h.Logger.Warnf("Supabase sign-out failed: %v", err)
	}

	h.Sessions.Clear()
	h.Store.ClearState()

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Signed out",
	})
}
