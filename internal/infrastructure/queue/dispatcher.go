package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// ViewCounter is the storage side of view tracking.
type ViewCounter interface {
	IncrementPropertyViews(ctx context.Context, id string) error
}

// Dispatcher counts property views off the request path. Views are sharded
// by property id with FNV so that a single property is always handled by the
// same worker.
type Dispatcher struct {
	workers []chan string
	counter ViewCounter
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, counter ViewCounter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		counter: counter,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches the workers. They run until Stop drains the queues.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(context.WithoutCancel(ctx), i, ch)
	}
}

// Record enqueues one view of propertyID. When the shard is full, or the
// dispatcher is stopped, the view is written inline instead of being lost.
func (d *Dispatcher) Record(propertyID string) {
	d.mu.RLock()
	if !d.stopped {
		select {
		case d.workers[d.shardIndex(propertyID)] <- propertyID:
			d.mu.RUnlock()
			return
		default:
		}
	}
	d.mu.RUnlock()

	d.log.Debug().Str("property_id", propertyID).Msg("view queue unavailable, counting inline")
	d.increment(context.Background(), -1, propertyID)
}

// Stop closes the queues and waits until every pending view is written or
// ctx expires.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) shardIndex(propertyID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(propertyID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	for propertyID := range ch {
		d.increment(ctx, id, propertyID)
	}
}

func (d *Dispatcher) increment(ctx context.Context, workerID int, propertyID string) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := d.counter.IncrementPropertyViews(ctx, propertyID); err != nil {
		d.log.Error().Err(err).
			Str("property_id", propertyID).
			Int("worker_id", workerID).
			Msg("view increment failed")
	}
}
