package poller

import (
	"context"
	"encoding/json"

	"github.com/Festongithub/onesoko-storefront/internal/cart"
	"github.com/Festongithub/onesoko-storefront/internal/catalog"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the slice of kafka.Reader the poller actually uses.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Poller consumes completed-order events and empties the matching cart,
// so checkouts recorded outside this gateway (payment callbacks, another
// device) still clear the session state.
type Poller struct {
	store   *cart.Store
	catalog *catalog.Service
	reader  Reader
	log     *zap.Logger
}

func New(store *cart.Store, catalogService *catalog.Service, log *zap.Logger, topic, groupID string, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6,
	})
	return &Poller{store: store, catalog: catalogService, reader: reader, log: log}
}

// NewWithReader exists for tests and custom reader setups.
func NewWithReader(store *cart.Store, catalogService *catalog.Service, log *zap.Logger, reader Reader) *Poller {
	return &Poller{store: store, catalog: catalogService, reader: reader, log: log}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.consumeOne(ctx)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		p.log.Warn("error closing kafka reader", zap.Error(err))
	}
}

type orderEvent struct {
	OwnerID string `json:"owner_id"`
	Status  string `json:"status"`
}

func (p *Poller) consumeOne(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn("error reading order event", zap.Error(err))
		}
		return
	}

	var event orderEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		p.log.Warn("malformed order event, skipping", zap.Error(err))
		return
	}
	if event.OwnerID == "" {
		p.log.Warn("order event missing owner_id, skipping")
		return
	}
	if event.Status != "" && event.Status != "completed" {
		return
	}

	p.store.Clear(ctx, event.OwnerID)
	if p.catalog != nil {
		// Stock counts changed upstream; drop the cached listing.
		p.catalog.Invalidate(ctx)
	}
	p.log.Info("cart cleared after completed order", zap.String("owner_id", event.OwnerID))
}
