package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/redcore/yabutech-api/pkg/auth"
	"github.com/redcore/yabutech-api/pkg/user"
)

// Handle handles HTTP requests for user management
type Handle struct {
	userService *user.UserService
}

// NewHandle creates a new user handler
func NewHandle(userService *user.UserService) *Handle {
	return &Handle{
		userService: userService,
	}
}

// RegisterRoutes registers the user management routes plus the current-user
// endpoint. These must be mounted under the authenticated route group.
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/user", h.CurrentUser)
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// CreateUserRequest is the request body for user creation
type CreateUserRequest struct {
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	RoleID               int64  `json:"role_id"`
}

// UpdateUserRequest is the request body for user updates. Password fields
// are optional; omitting them keeps the stored credential.
type UpdateUserRequest struct {
	FullName             string  `json:"full_name"`
	Email                string  `json:"email"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation"`
	RoleID               int64   `json:"role_id"`
}

// CurrentUser handles GET /user, returning the caller's own record with role
func (h *Handle) CurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.FromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, map[string]string{"message": "Unauthenticated."})
		return
	}

	me, err := h.userService.GetUser(r.Context(), authUser.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, me)
}

// List handles GET /users
func (h *Handle) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.FindUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, users)
}

// Create handles POST /users
func (h *Handle) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, r)
		return
	}

	params := user.CreateUserParams{}
	copier.Copy(&params, &req)

	created, err := h.userService.CreateUser(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// Get handles GET /users/{id}
func (h *Handle) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	found, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, found)
}

// Update handles PUT /users/{id}
func (h *Handle) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, r)
		return
	}

	params := user.UpdateUserParams{ID: id}
	copier.Copy(&params, &req)

	updated, err := h.userService.UpdateUser(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, updated)
}

// Delete handles DELETE /users/{id}
func (h *Handle) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// parseID reads the {id} route parameter. A non-numeric id behaves like a
// missing record and yields 404.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"message": "user not found"})
		return 0, false
	}
	return id, true
}
