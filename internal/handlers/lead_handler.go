package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ispcrm/internal/models"
	"ispcrm/internal/services"
)

type LeadHandler struct {
	service *services.LeadService
}

func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

func (h *LeadHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Create(user, &lead); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// List supports ?status=, ?search= (name/contact/address) and pagination.
func (h *LeadHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	limit, offset := pagination(c)
	leads, err := h.service.List(user, c.Query("status"), c.Query("search"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	lead, err := h.service.GetByID(user, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body models.Lead
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body.ID = id

	updated, err := h.service.Update(user, &body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(user, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted"})
}

// Stats returns per-status lead counts for the caller's scope.
func (h *LeadHandler) Stats(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	stats, err := h.service.Stats(user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
