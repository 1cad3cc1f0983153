package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/logger"
)

type retryItem struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus so a failing subscriber never fails the game action.
// Failed events are retried in the background with exponential backoff and
// dead-lettered once retries are exhausted.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	queue    chan retryItem
	done     chan struct{}
	wg       sync.WaitGroup
	shutOnce sync.Once
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(inner Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		queue:      make(chan retryItem, RetryQueueBufferSize),
		done:       make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// Publish delivers the event; a failure is queued for retry and never returned
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry delivers the event once and queues it for retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)
	p.enqueue(retryItem{event: event, attempts: 1, lastErr: err})
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(item retryItem) {
	select {
	case <-p.done:
		p.writeDeadLetter(item)
		return
	default:
	}

	select {
	case p.queue <- item:
	default:
		logger.FromContext(context.Background()).Error(LogMsgRetryQueueFull, "event_type", item.event.Type)
		p.writeDeadLetter(item)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			p.drain()
			return
		case item := <-p.queue:
			p.retry(item)
		}
	}
}

func (p *ResilientPublisher) retry(item retryItem) {
	log := logger.FromContext(context.Background())

	for item.attempts <= p.maxRetries {
		timer := time.NewTimer(CalculateRetryDelay(p.baseDelay, item.attempts))
		select {
		case <-p.done:
			timer.Stop()
			log.Warn(LogMsgEventDroppedShutdown, "event_type", item.event.Type)
			p.writeDeadLetter(item)
			return
		case <-timer.C:
		}

		err := p.inner.Publish(context.Background(), item.event)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", item.event.Type, "attempt", item.attempts)
			return
		}

		item.attempts++
		item.lastErr = err
		log.Warn(LogMsgEventRetryFailed, "event_type", item.event.Type, "attempt", item.attempts, "error", err)
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", item.event.Type, "attempts", item.attempts)
	p.writeDeadLetter(item)
}

func (p *ResilientPublisher) drain() {
	for {
		select {
		case item := <-p.queue:
			p.writeDeadLetter(item)
		default:
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(item retryItem) {
	if err := p.deadLetter.Write(item.event, item.attempts, item.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFail, "error", err)
	}
}

// Shutdown stops the retry worker; pending events are dead-lettered
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutOnce.Do(func() { close(p.done) })

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
