package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"contactia/app/config"
	"contactia/app/service/dialogue"
	"contactia/app/service/transcript"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

const snapshotKeyPrefix = "chat:session:"

var (
	_ Dialogue = (*dialogue.Service)(nil)
	_ Recorder = (*transcript.Service)(nil)
)

// Dialogue is the conversation engine a turn is delegated to.
type Dialogue interface {
	Greeting() string
	Advance(ctx context.Context, sess *dialogue.Session, text string) string
}

// Recorder receives the visual transcript of the chat.
type Recorder interface {
	Append(session, role, text string) error
}

// Manager owns the live sessions and serializes turns per session id. Redis
// keeps best-effort snapshots so sessions survive a restart; without Redis
// everything stays in memory.
type Manager struct {
	dialogueSvc   Dialogue
	transcriptSvc Recorder
	rdb           *redis.Client
	ttl           time.Duration

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	sess *dialogue.Session
}

func New(di *do.Injector) (*Manager, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)

	var rdb *redis.Client

	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Pass,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := rdb.Ping(pingCtx).Err(); err != nil {
			slog.Warn("Redis unavailable, sessions are memory-only", "error", err)
			rdb = nil
		}
	}

	return &Manager{
		dialogueSvc:   do.MustInvoke[*dialogue.Service](di),
		transcriptSvc: do.MustInvoke[*transcript.Service](di),
		rdb:           rdb,
		ttl:           time.Duration(cfg.Chat.SessionTTLMinutes) * time.Minute,
		sessions:      make(map[string]*entry),
	}, nil
}

// Handle applies one utterance to the session and returns (sessionID, reply).
// An empty session id starts a fresh session; an empty message on a fresh
// session yields the greeting.
func (m *Manager) Handle(ctx context.Context, sessionID, text string) (string, string) {
	fresh := false
	if sessionID == "" {
		sessionID = uuid.NewString()
		fresh = true
	}

	e := m.entryFor(ctx, sessionID)

	e.mu.Lock()
	defer e.mu.Unlock()

	var reply string
	if fresh && strings.TrimSpace(text) == "" {
		reply = m.dialogueSvc.Greeting()
	} else {
		m.record(sessionID, transcript.RoleUser, text)
		reply = m.dialogueSvc.Advance(ctx, e.sess, text)
	}

	m.record(sessionID, transcript.RoleBot, reply)
	m.snapshot(ctx, e.sess)

	return sessionID, reply
}

func (m *Manager) entryFor(ctx context.Context, sessionID string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[sessionID]; ok {
		return e
	}

	e := &entry{sess: m.restore(ctx, sessionID)}
	m.sessions[sessionID] = e

	return e
}

func (m *Manager) restore(ctx context.Context, sessionID string) *dialogue.Session {
	if m.rdb == nil {
		return dialogue.NewSession(sessionID)
	}

	data, err := m.rdb.Get(ctx, snapshotKeyPrefix+sessionID).Bytes()
	if err != nil {
		return dialogue.NewSession(sessionID)
	}

	var sess dialogue.Session
	if err = json.Unmarshal(data, &sess); err != nil {
		slog.Warn("Failed to decode session snapshot, starting fresh",
			"session", sessionID,
			"error", err,
		)

		return dialogue.NewSession(sessionID)
	}

	return &sess
}

func (m *Manager) snapshot(ctx context.Context, sess *dialogue.Session) {
	if m.rdb == nil {
		return
	}

	data, err := json.Marshal(sess)
	if err != nil {
		slog.Warn("Failed to encode session snapshot", "session", sess.ID, "error", err)
		return
	}

	if err = m.rdb.Set(ctx, snapshotKeyPrefix+sess.ID, data, m.ttl).Err(); err != nil {
		slog.Warn("Failed to store session snapshot", "session", sess.ID, "error", err)
	}
}

func (m *Manager) record(sessionID, role, text string) {
	if err := m.transcriptSvc.Append(sessionID, role, text); err != nil {
		slog.Warn("Failed to append transcript turn",
			"session", sessionID,
			"error", err,
		)
	}
}
