package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// Publisher pushes order.paid events to Kafka through a buffered inbox so
// the fulfillment path never blocks on the broker.
type Publisher struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewPublisher(brokers []string, topic string, buf int) *Publisher {
	return &Publisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *Publisher) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				_ = p.w.Close()
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					return
				}
				if err := p.w.WriteMessages(context.Background(), m); err != nil {
					log.Error().Err(err).Str("key", string(m.Key)).Msg("publish order event")
				}
			}
		}
	}()
}

func (p *Publisher) OrderPaid(evt domain.OrderPaidEvent) {
	value, err := json.Marshal(evt)
	if err != nil {
		log.Error().Err(err).Msg("marshal order.paid event")
		return
	}
	// A webhook can still be in flight when shutdown wins the race; enqueue
	// under the lock so a late event is dropped instead of hitting a closed
	// channel.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		log.Warn().Str("order_id", evt.OrderID.String()).Msg("publisher closed, dropping order.paid")
		return
	}
	select {
	case p.inbox <- kafka.Message{
		Key:   []byte(evt.OrderID.String()),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte("order.paid")},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}:
	default:
		log.Warn().Str("order_id", evt.OrderID.String()).Msg("event inbox full, dropping order.paid")
	}
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

func (p *Publisher) WaitClosed() { <-p.closeCh }
