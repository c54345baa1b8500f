package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"

	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
)

// Publisher emits listing lifecycle events for downstream consumers
// (notifications, analytics). The subject carried on the event decides the
// NATS subject.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) PublishListingEvent(_ context.Context, event domain.ListingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Publish(event.Subject, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
