package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MessageType identifies websocket payload variants.
type MessageType string

const (
	TypeQuery       MessageType = "query"
	TypePing        MessageType = "ping"
	TypeAnswer      MessageType = "answer"
	TypePong        MessageType = "pong"
	TypeSystemEvent MessageType = "system_event"
	TypeErrorEvent  MessageType = "error_event"
)

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

// ClientQuery asks a question. Persona overrides the one given at connect time.
type ClientQuery struct {
	Type      MessageType `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	Message   string      `json:"message"`
	Persona   string      `json:"persona,omitempty"`
}

type ClientPing struct {
	Type MessageType `json:"type"`
}

type Answer struct {
	Type      MessageType `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	Response  string      `json:"response"`
}

type Pong struct {
	Type MessageType `json:"type"`
}

type SystemEvent struct {
	Type   MessageType `json:"type"`
	Code   string      `json:"code"`
	Detail string      `json:"detail,omitempty"`
}

type ErrorEvent struct {
	Type      MessageType `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	Code      string      `json:"code"`
	Detail    string      `json:"detail"`
}

func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeQuery:
		var msg ClientQuery
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if strings.TrimSpace(msg.Message) == "" {
			return nil, errors.New("invalid query: message is required")
		}
		return msg, nil
	case TypePing:
		return ClientPing{Type: TypePing}, nil
	default:
		return nil, ErrUnsupportedType
	}
}
