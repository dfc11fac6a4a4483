package grading

import (
	"net/http"

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

func (h *Handler) GetTeamGrade(c *gin.Context) {
	teamID := c.Param("teamId")
	fromDate := c.Query("from")
	toDate := c.Query("to")

	resp, err := h.service.TeamGrade(c.Request.Context(), teamID, fromDate, toDate)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMyGrade(c *gin.Context) {
	userID := c.GetString("user_id_validated")
	fromDate := c.Query("from")
	toDate := c.Query("to")

	resp, err := h.service.WorkerGrade(c.Request.Context(), userID, fromDate, toDate)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetWorkerGrade(c *gin.Context) {
	userID := c.Param("userId")
	fromDate := c.Query("from")
	toDate := c.Query("to")

	resp, err := h.service.WorkerGrade(c.Request.Context(), userID, fromDate, toDate)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
