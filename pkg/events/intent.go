package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Intent is the JSON payload put on the RabbitMQ queue after a create or delete
// has been accepted by the owning service.
type Intent struct {
	Type       string    `json:"type"` // e.g. "user.created", "product.deleted"
	Collection string    `json:"collection"`
	ID         string    `json:"id,omitempty"` // empty for creates; the service assigns it
	Session    string    `json:"session,omitempty"`
	At         time.Time `json:"at"`
}

const (
	UserCreated    = "user.created"
	UserDeleted    = "user.deleted"
	ProductCreated = "product.created"
	ProductDeleted = "product.deleted"
)

// New builds an intent stamped with the current UTC time.
func New(typ, collection, id string) Intent {
	return Intent{Type: typ, Collection: collection, ID: id, At: time.Now().UTC()}
}

var ErrUnknownType = errors.New("unknown intent type")

// Decode parses a queued message and rejects types this console never emits.
func Decode(body []byte) (Intent, error) {
	var in Intent
	if err := json.Unmarshal(body, &in); err != nil {
		return Intent{}, fmt.Errorf("decode intent: %w", err)
	}
	switch in.Type {
	case UserCreated, UserDeleted, ProductCreated, ProductDeleted:
		return in, nil
	}
	return Intent{}, fmt.Errorf("%w: %q", ErrUnknownType, in.Type)
}

// Fields renders the intent as logrus audit fields.
func (i Intent) Fields() logrus.Fields {
	f := logrus.Fields{
		"type":       i.Type,
		"collection": i.Collection,
		"at":         i.At.Format(time.RFC3339),
	}
	if i.ID != "" {
		f["id"] = i.ID
	}
	if i.Session != "" {
		f["session"] = i.Session
	}
	return f
}
