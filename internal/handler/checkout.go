package handler

import (
	"errors"
	"net/http"

	"koi-checkout/internal/checkout"
	"koi-checkout/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userFacingOrderError mirrors what the storefront alerts on a failed
// payment; upstream detail stays in the logs.
const userFacingOrderError = "Failed to process payment. Please try again."

type CheckoutHandler struct {
	svc checkout.Service
}

func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// checkoutRequest is the purchase context the referring page hands over.
// Exactly one of koiFish/batch is expected.
type checkoutRequest struct {
	KoiFish       *checkout.KoiFish `json:"koiFish"`
	Batch         *checkout.Batch   `json:"batch"`
	Quantity      int               `json:"quantity"`
	PaymentMethod string            `json:"paymentMethod"`
	PromotionCode string            `json:"promotionCode"`
	CustomerID    int64             `json:"customerId"`
}

func (r checkoutRequest) toSubmission() (*checkout.Submission, error) {
	return checkout.NewSubmission(checkout.PurchaseContext{
		Koi:           r.KoiFish,
		Batch:         r.Batch,
		Quantity:      r.Quantity,
		PromotionCode: r.PromotionCode,
		Method:        checkout.PaymentMethod(r.PaymentMethod),
		CustomerID:    r.CustomerID,
	})
}

// Quote returns the display price and the pickup/delivery panel without
// creating anything.
func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := req.toSubmission()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.svc.Quote(c.Request.Context(), middleware.Token(c), sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// Submit runs the order-creation workflow and, on success, answers
// 303 See Other pointing at the payment provider URL.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := req.toSubmission()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), middleware.Token(c), sub)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, checkout.ErrOrderCreateFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": userFacingOrderError})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": userFacingOrderError})
		}
		return
	}

	c.Header("Location", result.PaymentURL)
	c.JSON(http.StatusSeeOther, gin.H{
		"orderID":    result.OrderID,
		"paymentUrl": result.PaymentURL,
	})
}
