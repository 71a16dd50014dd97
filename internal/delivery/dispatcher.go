package delivery

import (
	"context"
	"sync"
	"time"

	"koi-checkout/internal/checkout"
	"koi-checkout/internal/logger"

	"go.uber.org/zap"
)

// Creator is the upstream delivery-create call; satisfied by platform.Client.
type Creator interface {
	CreateDelivery(ctx context.Context, token string, req checkout.DeliveryRequest) error
}

const defaultBuffer = 64

// Dispatcher executes delivery creation as an explicit fire-and-forget task.
// The submit path enqueues and moves on; a worker goroutine makes the
// upstream call, and failures land in the journal instead of in the
// customer's face. Exactly the ordering the checkout needs: order creation
// is synchronous, delivery creation is asynchronous and unconfirmed.
type Dispatcher struct {
	creator Creator
	repo    Repository
	jobs    chan checkout.DeliveryJob
	timeout time.Duration

	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewDispatcher(creator Creator, repo Repository, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		creator: creator,
		repo:    repo,
		jobs:    make(chan checkout.DeliveryJob, buffer),
		timeout: 30 * time.Second,
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

// Enqueue hands a delivery job to the worker. It never blocks: with the
// queue full the job is journaled as failed rather than stalling a submit.
func (d *Dispatcher) Enqueue(job checkout.DeliveryJob) {
	select {
	case d.jobs <- job:
	default:
		d.journal(job, "dispatch queue full")
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.process(job)
	}
}

func (d *Dispatcher) process(job checkout.DeliveryJob) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	log := logger.L().With(
		zap.Int64("order_id", job.Request.OrderID),
		zap.Int64("customer_id", job.Request.CustomerID),
	)

	if err := d.creator.CreateDelivery(ctx, job.Token, job.Request); err != nil {
		log.Error("delivery creation failed", zap.Error(err))
		d.journal(job, err.Error())
		return
	}

	log.Info("shipment delivery created",
		zap.Time("start", job.Request.StartDeliDay),
		zap.Time("end", job.Request.EndDeliDay),
	)
}

func (d *Dispatcher) journal(job checkout.DeliveryJob, reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = d.repo.RecordFailure(ctx, &Failure{
		OrderID:    job.Request.OrderID,
		CustomerID: job.Request.CustomerID,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	})
}
