package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/samber/do"
)

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

var logFilePath = filepath.Join("data", "transcript.jsonl")

// Service appends chat turns to a JSONL file. Purely a side effect, never
// read back by the bot.
type Service struct {
	mu sync.Mutex
}

type turn struct {
	Session   string    `json:"session"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"ts"`
}

func New(_ *do.Injector) (*Service, error) {
	if err := os.MkdirAll("data", 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &Service{}, nil
}

func (s *Service) Append(session, role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open transcript file: %w", err)
	}
	defer file.Close()

	data, err := json.Marshal(turn{
		Session:   session,
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	if _, err = file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write turn: %w", err)
	}

	return nil
}
