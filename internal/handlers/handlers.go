package handlers

import (
	"gorm.io/gorm"

	"github.com/campusvoice/policy-board/backend/internal/token"
)

// Handler combines all handler types
type Handler struct {
	Auth   *AuthHandler
	Policy *PolicyHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, issuer *token.Issuer) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(db, issuer),
		Policy: NewPolicyHandler(db),
	}
}
