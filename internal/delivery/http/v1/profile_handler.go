package v1

import (
	"net/http"
	"strconv"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/delivery/http/response"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	admin := protected.Group("/admin")
	{
		admin.GET("/profiles", handler.ListProfiles)
		admin.PATCH("/profiles/:id", handler.UpdateProfile)
		admin.DELETE("/profiles/:id", handler.DeleteProfile)
	}
}

// ListProfiles godoc
// @Summary      List registered users
// @Description  Returns paginated user profiles with optional search
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search    query  string  false  "Match against full name or email"
// @Param        page      query  int     false  "Page number"
// @Param        pageSize  query  int     false  "Items per page"
// @Success      200       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Router       /admin/profiles [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	result, err := h.profileUC.List(c.Request.Context(), domain.ProfileListOptions{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// UpdateProfile godoc
// @Summary      Update a user profile
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "User ID"
// @Param        body  body      domain.UpdateProfileRequest  true  "Profile fields"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /admin/profiles/{id} [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(apperror.BadRequest("User ID is required"))
		return
	}

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.Update(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// DeleteProfile godoc
// @Summary      Delete a user profile
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/profiles/{id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(apperror.BadRequest("User ID is required"))
		return
	}

	if err := h.profileUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
