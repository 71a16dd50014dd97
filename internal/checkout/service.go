package checkout

import (
	"context"
	"fmt"
	"time"

	"koi-checkout/internal/logger"

	"go.uber.org/zap"
)

// Gateway is the slice of the platform API the checkout flow reads and
// writes. Delivery creation is not here: it goes through the dispatcher.
type Gateway interface {
	GetProfile(ctx context.Context, token string) (*UserProfile, error)
	CreateOrder(ctx context.Context, token string, req OrderRequest) (*OrderResult, error)
}

// DeliveryJob carries everything the async delivery worker needs; the
// bearer token rides along because the upstream call is made later, outside
// the request that produced it.
type DeliveryJob struct {
	Token   string
	Request DeliveryRequest
}

// DeliveryDispatcher accepts delivery jobs fire-and-forget. Enqueue must
// not block the submit path.
type DeliveryDispatcher interface {
	Enqueue(job DeliveryJob)
}

// PickupInfo is shown for direct payment: the customer pays a 50% deposit
// and collects the fish at the shop.
type PickupInfo struct {
	ShopAddress string    `json:"shopAddress"`
	ShopPhone   string    `json:"shopPhone"`
	PackedDate  time.Time `json:"packedDate"`
	PickupFrom  time.Time `json:"pickupFrom"`
	PickupUntil time.Time `json:"pickupUntil"`
}

// DeliveryInfo is shown for full online payment: the order ships to the
// customer's registered address.
type DeliveryInfo struct {
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	EstimatedDate time.Time `json:"estimatedDate"`
}

// Quote is the price summary and context panel for a purchase before the
// customer commits.
type Quote struct {
	Price    string        `json:"price"`
	Method   PaymentMethod `json:"paymentMethod"`
	Pickup   *PickupInfo   `json:"pickup,omitempty"`
	Delivery *DeliveryInfo `json:"delivery,omitempty"`
}

type Service interface {
	Quote(ctx context.Context, token string, sub *Submission) (*Quote, error)
	Submit(ctx context.Context, token string, sub *Submission) (*OrderResult, error)
}

type service struct {
	gateway     Gateway
	dispatcher  DeliveryDispatcher
	guard       Guard
	shopAddress string
	shopPhone   string
	now         func() time.Time
}

func NewService(gateway Gateway, dispatcher DeliveryDispatcher, guard Guard, shopAddress, shopPhone string) Service {
	return &service{
		gateway:     gateway,
		dispatcher:  dispatcher,
		guard:       guard,
		shopAddress: shopAddress,
		shopPhone:   shopPhone,
		now:         time.Now,
	}
}

// Quote computes the display price and the informational panel for the
// purchase. The profile fetch is best effort: a failure leaves the address
// fields empty rather than blocking the page.
func (s *service) Quote(ctx context.Context, token string, sub *Submission) (*Quote, error) {
	pc := sub.Context
	q := &Quote{
		Price:  DisplayPrice(pc).StringFixed(2),
		Method: pc.Method,
	}

	now := s.now()
	packed := now.AddDate(0, 0, 3)
	estimated := now.AddDate(0, 0, 10)

	if pc.Method == MethodDirect {
		q.Pickup = &PickupInfo{
			ShopAddress: s.shopAddress,
			ShopPhone:   s.shopPhone,
			PackedDate:  packed,
			PickupFrom:  packed,
			PickupUntil: estimated,
		}
		return q, nil
	}

	profile, err := s.gateway.GetProfile(ctx, token)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch user profile", zap.Error(err))
		profile = &UserProfile{}
	}
	q.Delivery = &DeliveryInfo{
		Address:       profile.Address,
		Phone:         profile.Phone,
		EstimatedDate: estimated,
	}
	return q, nil
}

// Submit runs the order-creation workflow:
//
//	Idle -> Submitting -> Redirected   on success
//	Idle -> Submitting -> Idle         on failure (manual resubmit possible)
//
// For VNPay orders a delivery record is dispatched after the order is
// created; its outcome never blocks or fails the redirect.
func (s *service) Submit(ctx context.Context, token string, sub *Submission) (*OrderResult, error) {
	if err := sub.begin(); err != nil {
		return nil, err
	}

	key := GuardKey(sub.Context)
	acquired, err := s.guard.Acquire(ctx, key)
	if err != nil {
		sub.finish(false)
		return nil, err
	}
	if !acquired {
		sub.finish(false)
		return nil, ErrSubmissionInFlight
	}
	defer s.guard.Release(ctx, key)

	log := logger.FromCtx(ctx).With(
		zap.Int64("customer_id", sub.Context.CustomerID),
		zap.String("payment_method", string(sub.Context.Method)),
	)

	req := BuildOrderRequest(sub)
	result, err := s.gateway.CreateOrder(ctx, token, req)
	if err != nil {
		sub.finish(false)
		log.Error("order creation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}

	if sub.Context.Method == MethodVNPay {
		s.dispatcher.Enqueue(DeliveryJob{
			Token:   token,
			Request: BuildDeliveryRequest(result.OrderID, sub.Context.CustomerID, s.now()),
		})
	}

	sub.finish(true)
	log.Info("order created",
		zap.Int64("order_id", result.OrderID),
		zap.String("payment_url", result.PaymentURL),
	)
	return result, nil
}
