package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ispcrm/internal/models"
	"ispcrm/internal/services"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// @Summary      Create a project proposal
// @Description  Prices every item against the catalog; any discounted item sends the project to manager approval, otherwise it is approved and the lead converts immediately
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Param        body  body      services.CreateProjectRequest  true  "Lead and proposed items"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, items, needsApproval, err := h.service.Create(user, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	msg := "Project approved, lead converted to customer"
	if needsApproval {
		msg = "Project submitted for manager approval"
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        msg,
		"project":        project,
		"items":          items,
		"needs_approval": needsApproval,
	})
}

func (h *ProjectHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	limit, offset := pagination(c)
	projects, err := h.service.List(user, c.Query("status"), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetByID(user, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type decisionRequest struct {
	Action          string `json:"action" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

// Decide is manager-only (enforced in routing). The body carries
// action "approve" or "reject" plus an optional rejection reason.
func (h *ProjectHandler) Decide(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.service.Decide(user, id, req.Action, req.RejectionReason)
	if err != nil {
		writeError(c, err)
		return
	}

	msg := "Project approved, lead converted to customer"
	if project.Status == models.ProjectStatusRejected {
		msg = "Project rejected"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "project": project})
}
