package handler

import (
	"net/http"

	"noti-server/internal/middleware"
	"noti-server/pkg/response"
)

// AuthHandler reflects claims already verified by the identity middleware.
// It performs no validation of its own.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r)
	if identity == nil {
		response.Success(w, map[string]interface{}{"authenticated": false})
		return
	}

	response.Success(w, map[string]interface{}{
		"authenticated":      true,
		"sub":                identity.Sub,
		"preferred_username": identity.PreferredUsername,
		"email":              identity.Email,
		"name":               identity.Name,
		"roles":              identity.Roles,
		"authorities":        identity.Authorities,
	})
}
