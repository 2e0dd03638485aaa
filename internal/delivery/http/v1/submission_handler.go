package v1

import (
	"net/http"
	"strconv"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/delivery/http/response"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionUC domain.SubmissionUsecase
}

func NewSubmissionHandler(protected *gin.RouterGroup, submissionUC domain.SubmissionUsecase) {
	handler := &SubmissionHandler{submissionUC: submissionUC}

	admin := protected.Group("/admin")
	{
		admin.GET("/submissions", handler.ListSubmissions)
		admin.GET("/submissions/:id", handler.GetSubmission)
		admin.PATCH("/submissions/:id", handler.UpdateSubmission)
		admin.PATCH("/submissions/:id/status", handler.ChangeStatus)
		admin.DELETE("/submissions/:id", handler.DeleteSubmission)
	}
}

// ListSubmissions godoc
// @Summary      List form submissions
// @Description  Returns paginated submissions with optional search and status filter
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search    query  string  false  "Match against name, email or service"
// @Param        status    query  string  false  "Filter by status (pending, negosiasi, success)"
// @Param        page      query  int     false  "Page number"
// @Param        pageSize  query  int     false  "Items per page"
// @Success      200       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Router       /admin/submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	result, err := h.submissionUC.List(c.Request.Context(), domain.SubmissionListOptions{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// GetSubmission godoc
// @Summary      Get a submission
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(apperror.BadRequest("Submission ID is required"))
		return
	}

	sub, err := h.submissionUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// UpdateSubmission godoc
// @Summary      Update a submission
// @Description  Edits submission contact details
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Submission ID"
// @Param        body  body      domain.UpdateSubmissionRequest  true  "Submission fields"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/submissions/{id} [patch]
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(apperror.BadRequest("Submission ID is required"))
		return
	}

	var req domain.UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	sub, err := h.submissionUC.Update(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// ChangeStatus godoc
// @Summary      Change submission status
// @Description  Moves a submission through the triage workflow and emails the customer about the change
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Submission ID"
// @Param        body  body      domain.ChangeStatusRequest  true  "New status"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/submissions/{id}/status [patch]
func (h *SubmissionHandler) ChangeStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(apperror.BadRequest("Submission ID is required"))
		return
	}

	var req domain.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	sub, err := h.submissionUC.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

// DeleteSubmission godoc
// @Summary      Delete a submission
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/submissions/{id} [delete]
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(apperror.BadRequest("Submission ID is required"))
		return
	}

	if err := h.submissionUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
