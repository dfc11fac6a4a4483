package absence

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-readiness/internal/shared/apperror"
	"go-readiness/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Detect(c *gin.Context) {
	companyID := c.GetString("company_id")
	userID := c.GetString("user_id_validated")

	resp, err := h.service.DetectAndCreate(c.Request.Context(), companyID, userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if resp == nil {
		resp = []AbsenceResponse{}
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DetectTeam(c *gin.Context) {
	companyID := c.GetString("company_id")
	teamID := c.Param("teamId")

	resp, err := h.service.DetectForTeam(c.Request.Context(), companyID, teamID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Justify(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	id := c.Param("id")

	var req JustifyAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Justify(c.Request.Context(), userID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Review(c *gin.Context) {
	companyID := c.GetString("company_id")
	reviewerID := c.GetString("user_id_validated")
	id := c.Param("id")

	var req ReviewAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Review(c.Request.Context(), companyID, reviewerID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPendingJustifications(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetPendingJustifications(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPendingReviews(c *gin.Context) {
	teamID := c.Param("teamId")

	resp, err := h.service.GetPendingReviews(c.Request.Context(), teamID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "60"))

	resp, err := h.service.GetHistory(c.Request.Context(), userID, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetBlocking(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	blocked, err := h.service.HasBlockingAbsences(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blocked": blocked}, nil)
}

func (h *Handler) GetStatusCounts(c *gin.Context) {
	userID := c.GetString("user_id_validated")

	resp, err := h.service.GetStatusCounts(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
