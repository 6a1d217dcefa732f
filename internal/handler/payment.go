package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/payment"
	"github.com/caresync/hms-api/pkg/logger"
)

type PaymentHandler struct {
	paymentSvc *payment.Service
	logger     *logger.Logger
}

func NewPaymentHandler(paymentSvc *payment.Service, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, logger: log}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := h.paymentSvc.Create(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.paymentSvc.Get(c.Request.Context(), viewer(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) List(c *gin.Context) {
	var paymentType *model.PaymentType
	if s := c.Query("payment_type"); s != "" {
		v := model.PaymentType(s)
		paymentType = &v
	}
	payments, err := h.paymentSvc.List(c.Request.Context(), viewer(c), paymentType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
