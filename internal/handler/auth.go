package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/study-plan/internal/auth"
	"github.com/sakif/study-plan/internal/model"
	"github.com/sakif/study-plan/internal/service"
)

// AuthHandler manages registration, login, logout, and the current-user
// endpoint.
type AuthHandler struct {
	auths  *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auths *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auths: auths, logger: logger}
}

// userPayload is the account shape returned to clients. The password hash
// never appears here.
type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserPayload(u *model.User) userPayload {
	return userPayload{ID: u.ID, Name: u.Name, Email: u.Email}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string      `json:"message"`
	User    userPayload `json:"user"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/register
// BODY: {"name": ..., "email": ..., "password": ...}
// → 201 {message, user:{id,name,email}} | 400 missing fields or duplicate email
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Todos os campos são obrigatórios",
		})
		return
	}

	result, err := h.auths.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, authResponse{
		Message: "Usuário criado com sucesso",
		User:    toUserPayload(result.User),
	})
}

// HandleLogin authenticates an existing account.
//
// HTTP: POST /api/login
// BODY: {"email": ..., "password": ...}
// → 200 {message, user:{id,name,email}} | 400 missing fields or bad credentials
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Email e senha são obrigatórios",
		})
		return
	}

	result, err := h.auths.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login realizado com sucesso",
		User:    toUserPayload(result.User),
	})
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /api/logout
// POST, not GET: logout changes state, and GET would be prefetchable.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout realizado com sucesso"})
}

// HandleMe returns the authenticated account.
//
// HTTP: GET /api/me
// Auth: RequireAuth middleware has validated the session token.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable on a RequireAuth route, but don't assume.
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	user, err := h.auths.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserPayload(user))
}

// setSessionCookie stores the JWT in an HttpOnly cookie: JavaScript cannot
// read it, which keeps XSS from stealing the session.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable in production behind HTTPS
	})
}
