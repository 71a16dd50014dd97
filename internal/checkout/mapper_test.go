package checkout

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePromotionID(t *testing.T) {
	assert.Equal(t, 12, ParsePromotionID("12"))
	assert.Equal(t, 12, ParsePromotionID(" 12 "))
	assert.Equal(t, 0, ParsePromotionID("abc"))
	assert.Equal(t, 0, ParsePromotionID(""))
	assert.Equal(t, 0, ParsePromotionID("-5"))
	assert.Equal(t, 0, ParsePromotionID("1.5"))
}

func TestBuildOrderRequest(t *testing.T) {
	t.Run("Batch purchase", func(t *testing.T) {
		sub, err := NewSubmission(PurchaseContext{
			Batch:         &Batch{BatchID: 9, QuantityAvailable: 20, PricePerBatch: decimal.NewFromInt(300)},
			Quantity:      3,
			Method:        MethodDirect,
			PromotionCode: "4",
		})
		require.NoError(t, err)

		req := BuildOrderRequest(sub)
		assert.Equal(t, 4, req.PromotionID)
		assert.Equal(t, 1, req.PaymentMethod)
		assert.Equal(t, [][2]int64{{9, 3}}, req.Batchs)
		assert.Nil(t, req.Kois)
	})

	t.Run("Single fish purchase", func(t *testing.T) {
		sub, err := NewSubmission(PurchaseContext{
			Koi:           &KoiFish{KoiID: 77, Price: decimal.NewFromInt(150)},
			Method:        MethodVNPay,
			PromotionCode: "abc",
		})
		require.NoError(t, err)

		req := BuildOrderRequest(sub)
		assert.Equal(t, 0, req.PromotionID)
		assert.Equal(t, 0, req.PaymentMethod)
		assert.Equal(t, []int64{77}, req.Kois)
		assert.Nil(t, req.Batchs)
	})
}

func TestBuildDeliveryRequest(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 30, 0, 0, time.UTC)

	req := BuildDeliveryRequest(42, 5, now)

	assert.Equal(t, int64(42), req.OrderID)
	assert.Equal(t, int64(5), req.CustomerID)
	assert.Equal(t, now, req.StartDeliDay)
	assert.Equal(t, 7*24*time.Hour, req.EndDeliDay.Sub(req.StartDeliDay))
}

func TestNewSubmission(t *testing.T) {
	batch := &Batch{BatchID: 1, QuantityAvailable: 5, PricePerBatch: decimal.NewFromInt(100)}
	koi := &KoiFish{KoiID: 2, Price: decimal.NewFromInt(80)}

	t.Run("Missing context", func(t *testing.T) {
		_, err := NewSubmission(PurchaseContext{Method: MethodVNPay})
		assert.ErrorIs(t, err, ErrMissingContext)
	})

	t.Run("Ambiguous context", func(t *testing.T) {
		_, err := NewSubmission(PurchaseContext{Koi: koi, Batch: batch, Quantity: 1, Method: MethodVNPay})
		assert.ErrorIs(t, err, ErrAmbiguousContext)
	})

	t.Run("Method defaults to VNPay", func(t *testing.T) {
		sub, err := NewSubmission(PurchaseContext{Koi: koi})
		require.NoError(t, err)
		assert.Equal(t, MethodVNPay, sub.Context.Method)
		assert.Equal(t, StateIdle, sub.State())
	})

	t.Run("Unknown method", func(t *testing.T) {
		_, err := NewSubmission(PurchaseContext{Koi: koi, Method: "PayPal"})
		assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
	})

	t.Run("Zero or negative batch quantity", func(t *testing.T) {
		_, err := NewSubmission(PurchaseContext{Batch: batch, Quantity: 0, Method: MethodVNPay})
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = NewSubmission(PurchaseContext{Batch: batch, Quantity: -1, Method: MethodVNPay})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Quantity over stock", func(t *testing.T) {
		_, err := NewSubmission(PurchaseContext{Batch: batch, Quantity: 6, Method: MethodVNPay})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("Quantity ignored for single fish", func(t *testing.T) {
		_, err := NewSubmission(PurchaseContext{Koi: koi, Quantity: 0, Method: MethodDirect})
		assert.NoError(t, err)
	})
}
