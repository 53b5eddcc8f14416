package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/redcore/yabutech-api/pkg/role"
)

// Handle handles HTTP requests for role management
type Handle struct {
	roleService *role.RoleService
}

// NewHandle creates a new role handler
func NewHandle(roleService *role.RoleService) *Handle {
	return &Handle{
		roleService: roleService,
	}
}

// RegisterPublicRoutes registers the unauthenticated role routes
func (h *Handle) RegisterPublicRoutes(r chi.Router) {
	r.Get("/roles", h.List)
}

// RegisterRoutes registers the role management routes.
// These must be mounted under the authenticated route group.
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Route("/roles", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// RoleRequest is the request body for role create and update
type RoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List handles GET /roles
func (h *Handle) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.FindRoles(r.Context())
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"message": "Failed to fetch roles"})
		return
	}
	render.JSON(w, r, roles)
}

// Create handles POST /roles
func (h *Handle) Create(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, r)
		return
	}

	params := role.CreateRoleParams{}
	copier.Copy(&params, &req)

	created, err := h.roleService.CreateRole(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// Get handles GET /roles/{id}
func (h *Handle) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	found, err := h.roleService.GetRole(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, found)
}

// Update handles PUT /roles/{id}
func (h *Handle) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req RoleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeBadRequest(w, r)
		return
	}

	params := role.UpdateRoleParams{ID: id}
	copier.Copy(&params, &req)

	updated, err := h.roleService.UpdateRole(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, updated)
}

// Delete handles DELETE /roles/{id}
func (h *Handle) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.roleService.DeleteRole(r.Context(), id); err != nil {
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
		render.JSON(w, r, map[string]string{"message": "role not found"})
		return 0, false
	}
	return id, true
}
