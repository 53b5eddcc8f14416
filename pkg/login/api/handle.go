package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/redcore/yabutech-api/pkg/auth"
	apperrors "github.com/redcore/yabutech-api/pkg/errors"
	"github.com/redcore/yabutech-api/pkg/login"
	"github.com/redcore/yabutech-api/pkg/user"
)

// Handle handles authentication HTTP requests
type Handle struct {
	loginService *login.LoginService
}

// NewHandle creates a new auth handler
func NewHandle(loginService *login.LoginService) *Handle {
	return &Handle{
		loginService: loginService,
	}
}

// RegisterRoutes registers the public authentication routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
}

// RegisterProtectedRoutes registers routes requiring an authenticated caller
func (h *Handle) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/logout", h.Logout)
}

// LoginRequest is the request body for POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the request body for POST /register
type RegisterRequest struct {
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	RoleID               int64  `json:"role_id"`
}

// AuthResponse is the success body for login and registration
type AuthResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    user.UserWithRole `json:"user"`
}

// Login handles POST /login. Every failure on this path renders 401 with a
// message-only body; internal causes are replaced with a generic message.
func (h *Handle) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeAuthError(w, r, http.StatusUnauthorized, "unable to parse body")
		return
	}

	params := login.LoginParams{}
	copier.Copy(&params, &req)

	result, err := h.loginService.Login(r.Context(), params)
	if err != nil {
		writeAuthError(w, r, http.StatusUnauthorized, messageFor(err))
		return
	}

	render.JSON(w, r, AuthResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// Register handles POST /register. Every failure on this path renders 400
// with a message-only body, unlike the field-structured user API errors;
// existing clients depend on that shape.
func (h *Handle) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeAuthError(w, r, http.StatusBadRequest, "unable to parse body")
		return
	}

	params := user.CreateUserParams{}
	copier.Copy(&params, &req)

	result, err := h.loginService.Register(r.Context(), params)
	if err != nil {
		writeAuthError(w, r, http.StatusBadRequest, messageFor(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, AuthResponse{
		Message: "Registration successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// Logout handles POST /logout, revoking the caller's tokens
func (h *Handle) Logout(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.FromContext(r.Context())
	if !ok {
		writeAuthError(w, r, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	if err := h.loginService.Logout(r.Context(), authUser.UserID); err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"message": "Server Error"})
		return
	}

	render.JSON(w, r, map[string]string{"message": "Logged out"})
}

// messageFor picks the client-visible message for an auth failure.
// Validation and credential messages pass through; anything else is
// replaced so internal errors never leak.
func messageFor(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Code != apperrors.ErrCodeInternal {
		return appErr.Message
	}
	return "Server Error"
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"message": message})
}
