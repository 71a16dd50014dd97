package checkout

import (
	"strconv"
	"strings"
	"time"
)

// deliveryWindow is how long after dispatch a delivery may take.
const deliveryWindow = 7 // days

// ParsePromotionID parses the free-text discount code into a promotion ID.
// Anything non-numeric means no promotion (ID 0).
func ParsePromotionID(code string) int {
	id, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// BuildOrderRequest maps a validated submission onto the platform's
// order-create payload.
func BuildOrderRequest(sub *Submission) OrderRequest {
	ctx := sub.Context
	req := OrderRequest{
		PromotionID:   ParsePromotionID(ctx.PromotionCode),
		PaymentMethod: ctx.Method.WireCode(),
	}
	if ctx.Batch != nil {
		req.Batchs = [][2]int64{{ctx.Batch.BatchID, int64(ctx.Quantity)}}
	}
	if ctx.Koi != nil {
		req.Kois = []int64{ctx.Koi.KoiID}
	}
	return req
}

// BuildDeliveryRequest builds the delivery record for a freshly created
// order: dispatch starts now and must complete within seven days.
func BuildDeliveryRequest(orderID, customerID int64, now time.Time) DeliveryRequest {
	start := now.UTC()
	return DeliveryRequest{
		OrderID:      orderID,
		CustomerID:   customerID,
		StartDeliDay: start,
		EndDeliDay:   start.AddDate(0, 0, deliveryWindow),
	}
}
