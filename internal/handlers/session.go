// internal/handlers/session.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/dress-catalog/internal/browse"
	"github.com/javajoker/dress-catalog/internal/services"
	"github.com/javajoker/dress-catalog/internal/utils"
)

// SessionHandler exposes browse sessions: server-held filter state whose location is
// replaced on every change.
type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// POST /sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	location := catalogPath
	if raw := c.Request.URL.RawQuery; raw != "" {
		location += "?" + raw
	}

	view := h.sessionService.Create(location)
	c.Header("X-Location", view.Location)
	c.JSON(http.StatusCreated, utils.APIResponse{
		Success: true,
		Data:    view,
		Meta:    gin.H{"total": view.Total, "location": view.Location},
	})
}

// GET /sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessionService.Get(c.Param("id"))
	h.respond(c, view, err)
}

// PATCH /sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var update browse.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequestResponse(c, "Invalid session update", err.Error())
		return
	}

	view, err := h.sessionService.Update(c.Param("id"), update)
	h.respond(c, view, err)
}

// PUT /sessions/:id/brands/:brand
func (h *SessionHandler) SelectBrand(c *gin.Context) {
	view, err := h.sessionService.SelectBrand(c.Param("id"), c.Param("brand"))
	h.respond(c, view, err)
}

// DELETE /sessions/:id/brands/:brand
func (h *SessionHandler) DeselectBrand(c *gin.Context) {
	view, err := h.sessionService.DeselectBrand(c.Param("id"), c.Param("brand"))
	h.respond(c, view, err)
}

// DELETE /sessions/:id/brands
func (h *SessionHandler) ClearBrands(c *gin.Context) {
	view, err := h.sessionService.ClearBrands(c.Param("id"))
	h.respond(c, view, err)
}

func (h *SessionHandler) respond(c *gin.Context, view services.SessionView, err error) {
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			utils.NotFoundResponse(c, "Session")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	c.Header("X-Location", view.Location)
	utils.SuccessResponseWithMeta(c, view, gin.H{
		"total":    view.Total,
		"location": view.Location,
	})
}
