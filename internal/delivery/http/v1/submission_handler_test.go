package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/delivery/http/middleware"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/logger"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSubmissionUC returns canned values and records the last call.
type stubSubmissionUC struct {
	lastStatus string
	lastID     string
	err        error
}

func (s *stubSubmissionUC) List(_ context.Context, opts domain.SubmissionListOptions) (*domain.PaginatedResult[domain.FormSubmission], error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.PaginatedResult[domain.FormSubmission]{
		Data:       []domain.FormSubmission{{ID: "sub-1", Name: "Ana", Status: domain.StatusPending}},
		Total:      1,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: 1,
	}, nil
}

func (s *stubSubmissionUC) Get(_ context.Context, id string) (*domain.FormSubmission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.FormSubmission{ID: id, Name: "Ana"}, nil
}

func (s *stubSubmissionUC) Update(_ context.Context, id string, req domain.UpdateSubmissionRequest) (*domain.FormSubmission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.FormSubmission{ID: id, Name: req.Name}, nil
}

func (s *stubSubmissionUC) ChangeStatus(_ context.Context, id string, newStatus string) (*domain.FormSubmission, error) {
	s.lastID = id
	s.lastStatus = newStatus
	if s.err != nil {
		return nil, s.err
	}
	return &domain.FormSubmission{ID: id, Status: newStatus}, nil
}

func (s *stubSubmissionUC) Delete(_ context.Context, id string) error {
	s.lastID = id
	return s.err
}

func newAdminRouter(uc domain.SubmissionUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Init()
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	group := r.Group("/v1")
	NewSubmissionHandler(group, uc)
	return r
}

func TestListSubmissionsPassesFilters(t *testing.T) {
	uc := &stubSubmissionUC{}
	r := newAdminRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/submissions?search=ana&status=pending&page=2&pageSize=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Success bool                                          `json:"success"`
		Data    domain.PaginatedResult[domain.FormSubmission] `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Data.Page)
	assert.Equal(t, 5, env.Data.PageSize)
	require.Len(t, env.Data.Data, 1)
	assert.Equal(t, "Ana", env.Data.Data[0].Name)
}

func TestChangeStatusAcceptsWorkflowStatuses(t *testing.T) {
	uc := &stubSubmissionUC{}
	r := newAdminRouter(uc)

	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/submissions/sub-1/status",
		strings.NewReader(`{"status": "negosiasi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sub-1", uc.lastID)
	assert.Equal(t, domain.StatusNegosiasi, uc.lastStatus)
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	uc := &stubSubmissionUC{}
	r := newAdminRouter(uc)

	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/submissions/sub-1/status",
		strings.NewReader(`{"status": "archived"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, uc.lastStatus, "usecase must not be reached with an invalid status")
}

func TestDeleteSubmission(t *testing.T) {
	uc := &stubSubmissionUC{}
	r := newAdminRouter(uc)

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/submissions/sub-9", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sub-9", uc.lastID)
}
