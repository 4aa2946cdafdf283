package amqp

import (
	"encoding/json"
	"time"

	"github.com/simaogato/wealthtrack/internal/domain"
)

// DocumentChangedMessage announces a committed document revision.
// Consumers fetch the document themselves; the message only names what moved.
type DocumentChangedMessage struct {
	Revision  uint64        `json:"revision"`
	Areas     []domain.Area `json:"areas"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewDocumentChangedMessage stamps a message with the current time
func NewDocumentChangedMessage(revision uint64, areas []domain.Area) *DocumentChangedMessage {
	return &DocumentChangedMessage{
		Revision:  revision,
		Areas:     areas,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DocumentChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DocumentChangedMessageFromJSON decodes a message
func DocumentChangedMessageFromJSON(data []byte) (*DocumentChangedMessage, error) {
	var msg DocumentChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
