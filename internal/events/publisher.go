// Package events publishes ledger facts for downstream consumers:
// committed transaction records, and reconciliation requests for the one
// tolerated inconsistency (a record append that failed after its balance
// change committed).
package events

import (
	"encoding/json"

	"github.com/gofrs/uuid/v5"
	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

const (
	subjectRecordCreated        = "ledger.transactions.created"
	subjectReconciliationNeeded = "ledger.reconciliation.needed"
)

// Reconciliation describes a balance change whose transaction record is
// missing and must be repaired out of band.
type Reconciliation struct {
	AccountID uuid.UUID       `json:"accountId"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

// Publisher emits ledger events. Publishing is best effort; callers log
// failures but never fail an operation because of them.
type Publisher interface {
	RecordCreated(record *ledger.Record) error
	ReconciliationNeeded(rec Reconciliation) error
}

// NATSPublisher publishes events to a NATS stream.
type NATSPublisher struct {
	conn *nats.Conn
}

var _ Publisher = (*NATSPublisher)(nil)

func Connect(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) RecordCreated(record *ledger.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return p.conn.Publish(subjectRecordCreated, data)
}

func (p *NATSPublisher) ReconciliationNeeded(rec Reconciliation) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return p.conn.Publish(subjectReconciliationNeeded, data)
}

func (p *NATSPublisher) Close() {
	p.conn.Close()
}

// NoopPublisher drops all events; used when no NATS URL is configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) RecordCreated(*ledger.Record) error        { return nil }
func (NoopPublisher) ReconciliationNeeded(Reconciliation) error { return nil }
