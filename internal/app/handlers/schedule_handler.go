package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mutual/loanlifecycle/internal/pkg/consts"
	"mutual/loanlifecycle/internal/pkg/models"
	"mutual/loanlifecycle/internal/service/schedule"
)

type ScheduleHandler struct {
	service *schedule.ScheduleService
}

func NewScheduleHandler(service *schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// GetSchedule serves a loan's installments, optionally narrowed by the
// inclusive from/to due-date window (YYYY-MM-DD).
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	loanID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgLoanNotFound))
		return
	}

	dateFrom, err := parseDateQuery(c.Query("from"))
	if err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}
	dateTo, err := parseDateQuery(c.Query("to"))
	if err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}

	installments, err := h.service.GetSchedule(c.Request.Context(), loanID, dateFrom, dateTo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, installments)
}

func (h *ScheduleHandler) RecordCollection(c *gin.Context) {
	installmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgInstallmentNotFound))
		return
	}

	var body models.RecordCollectionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, models.NewValidationError(err.Error()))
		return
	}

	methodID, err := primitive.ObjectIDFromHex(body.CollectionMethodID)
	if err != nil {
		respondError(c, models.NewValidationError(consts.MsgMethodNotFound))
		return
	}

	installment, err := h.service.RecordCollection(c.Request.Context(), installmentID, methodID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, installment)
}

func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
