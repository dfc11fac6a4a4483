package summary

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-readiness/internal/calendar"
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

func (h *Handler) Recalculate(c *gin.Context) {
	teamID := c.Param("teamId")
	date := c.Param("date")

	if _, err := calendar.ParseDate(date); err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.Recalculate(c.Request.Context(), teamID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTeamDate(c *gin.Context) {
	teamID := c.Param("teamId")
	date := c.Param("date")

	if _, err := calendar.ParseDate(date); err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetTeamDate(c.Request.Context(), teamID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTeamRange(c *gin.Context) {
	teamID := c.Param("teamId")
	fromDate := c.Query("from")
	toDate := c.Query("to")

	if _, err := calendar.ParseDate(fromDate); err != nil {
		writeServiceError(c, err)
		return
	}
	if _, err := calendar.ParseDate(toDate); err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetTeamRange(c.Request.Context(), teamID, fromDate, toDate)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetCompanyDate(c *gin.Context) {
	companyID := c.GetString("company_id")
	date := c.Param("date")

	if _, err := calendar.ParseDate(date); err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetCompanyDate(c.Request.Context(), companyID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
