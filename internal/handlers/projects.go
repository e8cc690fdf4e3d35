package handlers

import (
	"errors"
	"net/http"

	"verbatim/internal/service"

	"github.com/gin-gonic/gin"
)

const errProjectNotFoundMsg = "project not found"

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// updateProjectRequest uses pointers so absent fields stay untouched.
type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  createProjectRequest  true  "Project fields"
// @Success      201  {object}  models.Project
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /projects [post]
// @Security     BearerAuth
func (h *Handler) createProject(c *gin.Context) {
	var input createProjectRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := h.currentUser(c)
	p, err := h.services.Projects.Create(c.Request.Context(), user.ID, input.Name, input.Description)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to create project", "project_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}  models.Project
// @Failure      401  {object}  map[string]string
// @Router       /projects [get]
// @Security     BearerAuth
func (h *Handler) listProjects(c *gin.Context) {
	user := h.currentUser(c)
	projects, err := h.services.Projects.List(c.Request.Context(), user.ID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list projects", "project_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "Project ID"
// @Success      200  {object}  models.Project
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id} [get]
// @Security     BearerAuth
func (h *Handler) getProject(c *gin.Context) {
	user := h.currentUser(c)
	p, err := h.services.Projects.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Update project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Project ID"
// @Param        body  body  updateProjectRequest  true  "Fields to change"
// @Success      200  {object}  models.Project
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateProject(c *gin.Context) {
	var input updateProjectRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := h.currentUser(c)
	p, err := h.services.Projects.Update(c.Request.Context(), user.ID, c.Param("id"), service.ProjectPatch{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Delete project
// @Tags         projects
// @Param        id  path  string  true  "Project ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteProject(c *gin.Context) {
	user := h.currentUser(c)
	if err := h.services.Projects.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.respondProjectError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      List project transcriptions
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "Project ID"
// @Success      200  {array}  models.Transcription
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id}/transcriptions [get]
// @Security     BearerAuth
func (h *Handler) listTranscriptions(c *gin.Context) {
	user := h.currentUser(c)
	list, err := h.services.Projects.Transcriptions(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// respondProjectError maps service errors for project routes. A miss on an
// unowned project answers 404, identical to absence.
func (h *Handler) respondProjectError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errProjectNotFoundMsg})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, "project operation failed", "project_op_failed", err, "path", c.FullPath())
}
