// Package queue hands notifications to background workers for delivery.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelanceflow/marketplace-api/internal/api/metrics"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Deliverer persists a notification for its recipient.
type Deliverer interface {
	Deliver(ctx context.Context, input ports.NotificationInput) error
}

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the recipient, so one user's notifications are delivered in the
// order they were enqueued.
type Dispatcher struct {
	workers []chan ports.NotificationInput
	service Deliverer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service Deliverer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificationInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(input ports.NotificationInput) {
	shard := d.shardIndex(input.UserID)
	d.workers[shard] <- input
	metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(shard)).Set(float64(len(d.workers[shard])))
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationsQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			start := time.Now()
			result := "delivered"
			if err := d.service.Deliver(ctx, input); err != nil {
				result = "failed"
				d.log.Error().Err(err).
					Int("worker", id).
					Str("user_id", input.UserID).
					Msg("notification delivery failed")
			}
			metrics.NotificationsDeliveredTotal.WithLabelValues(result).Inc()
			metrics.NotificationDeliveryDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
