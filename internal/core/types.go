package core

import (
	"fmt"
	"strings"
)

const (
	AppName          = "aitalk"
	AppUserAgent     = "aitalk/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/aitalk"
	AppVersion       = "0.1.0"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

type Message struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// ValidateMessages checks a request before it leaves the process.
// Order is never changed, only inspected.
func ValidateMessages(msgs []Message) error {
	if len(msgs) == 0 {
		return fmt.Errorf("%w: no messages", ErrInvalidArgument)
	}
	for i, m := range msgs {
		if !m.Role.Valid() {
			return fmt.Errorf("%w: message %d has unknown role %q", ErrInvalidArgument, i, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("%w: message %d has empty content", ErrInvalidArgument, i)
		}
	}
	return nil
}

// MemoryItem is a corpus entry together with its embedding.
type MemoryItem struct {
	ID     int64
	Text   string
	Vector []float32
}

type QueryResult struct {
	ID    int64   `json:"id"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}
