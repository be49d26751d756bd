package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kosthub/backend/internal/domain/access"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/interfaces/http/middleware"
)

// NavigationHandler answers routing decisions for the client shells.
// The endpoint always renders the decision as a 200 envelope; the
// client performs the redirect itself, so a denied navigation never
// surfaces as a browser-level error page.
type NavigationHandler struct {
	BaseHandler
	registry *access.Registry
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(registry *access.Registry) *NavigationHandler {
	return &NavigationHandler{
		registry: registry,
	}
}

// NavigationDecisionResponse describes the outcome of one navigation
type NavigationDecisionResponse struct {
	Path       string `json:"path"`
	Area       string `json:"area"`
	Decision   string `json:"decision"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Shell      string `json:"shell"`
}

// Decide godoc
// @Summary      Decide a navigation
// @Description  Authorize a path for the current session and return the decision plus the owning UI shell. Anonymous sessions get redirect decisions, never errors.
// @Tags         navigation
// @Produce      json
// @Param        path query string true "Requested path" example("/properties")
// @Success      200 {object} dto.Response{data=NavigationDecisionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /navigation/decide [get]
func (h *NavigationHandler) Decide(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		h.BadRequest(c, "path query parameter is required")
		return
	}

	area, ok := h.registry.Lookup(path)
	if !ok {
		h.NotFound(c, "No area owns the requested path")
		return
	}

	// Registry corruption is fatal for the session, not a login redirect
	if err := middleware.GetResolutionError(c); err != nil && errors.Is(err, shared.ErrRoleDataIntegrity) {
		h.HandleError(c, err)
		return
	}

	snapshot := middleware.GetSnapshot(c)
	decision := access.Decide(area, path, snapshot)
	role, _ := snapshot.EffectiveRole()

	resp := NavigationDecisionResponse{
		Path:     path,
		Area:     area.Name,
		Decision: string(decision.Kind),
		Shell:    string(access.SelectShell(path, role)),
	}
	if decision.IsRedirect() {
		resp.RedirectTo = decision.RedirectTo
	}

	h.Success(c, resp)
}
