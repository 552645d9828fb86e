// Package session keeps per-conversation state for the chat surface.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("session not found")

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"type"`
	Content   string    `json:"content"`
	SQL       string    `json:"sql_query,omitempty"`
	RowCount  int       `json:"row_count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Pending is a question waiting for the user to confirm the interpretation.
type Pending struct {
	Question  string    `json:"question"`
	CreatedAt time.Time `json:"created_at"`
}

// Fix is a repaired statement waiting for the user's go-ahead.
type Fix struct {
	Question  string `json:"question"`
	FailedSQL string `json:"failed_sql"`
	Error     string `json:"error"`
	FixedSQL  string `json:"fixed_sql"`
}

type Session struct {
	ID         string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	History    []Message
	Pending    *Pending
	PendingFix *Fix
}

func (s *Session) clone() *Session {
	c := *s
	c.History = append([]Message(nil), s.History...)
	if s.Pending != nil {
		p := *s.Pending
		c.Pending = &p
	}
	if s.PendingFix != nil {
		f := *s.PendingFix
		c.PendingFix = &f
	}
	return &c
}

// Append adds a message stamped with a fresh id.
func (s *Session) Append(role Role, content, sql string, rowCount int, at time.Time) Message {
	m := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		SQL:       sql,
		RowCount:  rowCount,
		Timestamp: at,
	}
	s.History = append(s.History, m)
	return m
}

// Store persists sessions. Update runs fn with exclusive access to the
// session and saves it only when fn returns nil.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context) (*Session, error) {
	now := m.now()
	s := &Session{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s.clone(), nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.clone(), nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	work := s.clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	work.UpdatedAt = m.now()
	m.sessions[id] = work
	return work.clone(), nil
}

// Sweep drops sessions idle for longer than maxIdle and reports how many
// were removed.
func (m *MemoryStore) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports how many sessions are held.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartSweeper runs Sweep every interval until ctx is done.
func (m *MemoryStore) StartSweeper(ctx context.Context, interval, maxIdle time.Duration, logger *zap.Logger) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(maxIdle); n > 0 {
					logger.Debug("Idle chat sessions dropped", zap.Int("removed", n), zap.Int("remaining", m.Len()))
				}
			}
		}
	}()
}
