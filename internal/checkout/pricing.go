package checkout

import "github.com/shopspring/decimal"

// depositRate is the upfront fraction for direct payment orders.
var depositRate = decimal.NewFromFloat(0.5)

// BasePrice returns the undiscounted price of the purchase context:
// the batch lot price or the single fish price.
func BasePrice(ctx PurchaseContext) decimal.Decimal {
	if ctx.Batch != nil {
		return ctx.Batch.PricePerBatch
	}
	if ctx.Koi != nil {
		return ctx.Koi.Price
	}
	return decimal.Zero
}

// DisplayPrice is the amount shown to the customer and due now:
// full price for VNPay, a 50% deposit for direct payment.
// Rounded to 2 decimal places.
func DisplayPrice(ctx PurchaseContext) decimal.Decimal {
	price := BasePrice(ctx)
	if ctx.Method == MethodDirect {
		price = price.Mul(depositRate)
	}
	return price.Round(2)
}
