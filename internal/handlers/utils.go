package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/careerhub/frontdesk/internal/apiclient"
	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/types"
)

type contextKey string

const contextUserKey contextKey = "user"

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func userFromContext(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(contextUserKey).(types.User)
	return user, ok
}

// requestToken returns the caller's session token from the Authorization
// header or the portal cookie. Empty when neither is present.
func requestToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	if cookie, err := r.Cookie(apiclient.TokenCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return apperror.New(apperror.KindValidation, "invalid request", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeAppError answers with the status and message carried by err.
func writeAppError(w http.ResponseWriter, err error) {
	writeError(w, apperror.StatusCode(err), apperror.Message(err))
}
