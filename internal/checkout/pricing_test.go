package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDisplayPrice(t *testing.T) {
	t.Run("Batch with direct payment is half the lot price", func(t *testing.T) {
		ctx := PurchaseContext{
			Batch:  &Batch{BatchID: 1, PricePerBatch: decimal.NewFromFloat(199.99)},
			Method: MethodDirect,
		}
		assert.Equal(t, "100.00", DisplayPrice(ctx).StringFixed(2))
	})

	t.Run("Single fish with VNPay is full price", func(t *testing.T) {
		ctx := PurchaseContext{
			Koi:    &KoiFish{KoiID: 7, Price: decimal.NewFromFloat(350.50)},
			Method: MethodVNPay,
		}
		assert.Equal(t, "350.50", DisplayPrice(ctx).StringFixed(2))
	})

	t.Run("Single fish with direct payment", func(t *testing.T) {
		ctx := PurchaseContext{
			Koi:    &KoiFish{KoiID: 7, Price: decimal.NewFromInt(101)},
			Method: MethodDirect,
		}
		assert.Equal(t, "50.50", DisplayPrice(ctx).StringFixed(2))
	})

	t.Run("Deposit is rounded to 2 decimals", func(t *testing.T) {
		ctx := PurchaseContext{
			Koi:    &KoiFish{Price: decimal.NewFromFloat(0.05)},
			Method: MethodDirect,
		}
		// 0.025 rounds half away from zero
		assert.Equal(t, "0.03", DisplayPrice(ctx).StringFixed(2))
	})

	t.Run("Empty context prices to zero", func(t *testing.T) {
		assert.True(t, DisplayPrice(PurchaseContext{}).IsZero())
	})
}

func TestBasePrice(t *testing.T) {
	batchPrice := decimal.NewFromInt(500)
	koiPrice := decimal.NewFromInt(120)

	assert.True(t, batchPrice.Equal(BasePrice(PurchaseContext{Batch: &Batch{PricePerBatch: batchPrice}})))
	assert.True(t, koiPrice.Equal(BasePrice(PurchaseContext{Koi: &KoiFish{Price: koiPrice}})))
}
