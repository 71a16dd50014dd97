package checkout

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects how the customer pays. VNPay is the full online path
// and triggers a delivery record; direct payment is a 50% deposit with
// in-person pickup at the shop.
type PaymentMethod string

const (
	MethodVNPay  PaymentMethod = "VNPay"
	MethodDirect PaymentMethod = "Direct-Payment"
)

// WireCode is the integer the platform API expects for a payment method.
func (m PaymentMethod) WireCode() int {
	if m == MethodDirect {
		return 1
	}
	return 0
}

func (m PaymentMethod) Valid() bool {
	return m == MethodVNPay || m == MethodDirect
}

type KoiFish struct {
	KoiID    int64           `json:"koiID"`
	Name     string          `json:"name"`
	Species  string          `json:"species"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image"`
}

type Batch struct {
	BatchID           int64           `json:"batchID"`
	Name              string          `json:"name"`
	QuantityAvailable int             `json:"quantityPerBatch"`
	PricePerBatch     decimal.Decimal `json:"pricePerBatch"`
}

// PurchaseContext is the navigation-state contract from the referring page,
// made explicit: exactly one of Koi/Batch must be set.
type PurchaseContext struct {
	Koi           *KoiFish
	Batch         *Batch
	Quantity      int
	PromotionCode string
	Method        PaymentMethod
	CustomerID    int64
}

type UserProfile struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// OrderRequest is the platform /Order/create payload. Exactly one of
// Batchs/Kois is present, mirroring the purchase context.
type OrderRequest struct {
	PromotionID   int        `json:"promotionID"`
	PaymentMethod int        `json:"paymentMethod"`
	Batchs        [][2]int64 `json:"batchs,omitempty"`
	Kois          []int64    `json:"kois,omitempty"`
}

type OrderResult struct {
	OrderID    int64  `json:"orderID"`
	PaymentURL string `json:"paymentUrl"`
}

type DeliveryRequest struct {
	OrderID      int64     `json:"orderID"`
	CustomerID   int64     `json:"customerID"`
	StartDeliDay time.Time `json:"startDeliDay"`
	EndDeliDay   time.Time `json:"endDeliDay"`
}

// State tracks a submission through its lifecycle. Idle is both the initial
// state and the terminal state on failure; Redirected is terminal.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateRedirected
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "SUBMITTING"
	case StateRedirected:
		return "REDIRECTED"
	default:
		return "IDLE"
	}
}

// Submission is a validated purchase context plus its lifecycle state.
// Construct with NewSubmission; a zero Submission is not valid.
type Submission struct {
	Context PurchaseContext

	mu    sync.Mutex
	state State
}

// NewSubmission validates the purchase context up front, so missing or
// malformed input is rejected before any request is built.
func NewSubmission(ctx PurchaseContext) (*Submission, error) {
	if ctx.Koi == nil && ctx.Batch == nil {
		return nil, ErrMissingContext
	}
	if ctx.Koi != nil && ctx.Batch != nil {
		return nil, ErrAmbiguousContext
	}
	if ctx.Method == "" {
		ctx.Method = MethodVNPay
	}
	if !ctx.Method.Valid() {
		return nil, ErrUnknownPaymentMethod
	}
	if ctx.Batch != nil {
		if ctx.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if ctx.Quantity > ctx.Batch.QuantityAvailable {
			return nil, ErrInsufficientStock
		}
	}
	return &Submission{Context: ctx, state: StateIdle}, nil
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// begin moves Idle -> Submitting. A submission already in flight or already
// redirected is rejected, which is the reentrancy guard against double-click
// duplicate orders.
func (s *Submission) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrSubmissionInFlight
	}
	s.state = StateSubmitting
	return nil
}

func (s *Submission) finish(succeeded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if succeeded {
		s.state = StateRedirected
		return
	}
	s.state = StateIdle
}
