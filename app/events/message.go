package events

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// NewMessage marshals a payload into a Watermill message addressed to
// the given subject. The subject rides in metadata so the bus can
// route it without re-parsing the payload.
func NewMessage(subject string, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", subject, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("subject", subject)
	return msg, nil
}
