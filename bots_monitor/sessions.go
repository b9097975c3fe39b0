package bots_monitor

// Per-user conversation state: which menu mode the user is in and what input
// the bot is waiting for. Held in memory for the process lifetime, injected
// into the update handlers rather than kept as package globals.

import (
	"sync"

	"universal-bot/internal/features/wallets"
)

type Mode int

const (
	ModeNone Mode = iota
	ModeText
)

type Session struct {
	Mode            Mode
	TextCommand     string // "smart_clean" or "dedup"
	AwaitingForward bool
	AwaitingAddress bool
	PendingCoin     wallets.Coin
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]Session)}
}

func (s *SessionStore) Get(userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

func (s *SessionStore) Update(userID int64, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.sessions[userID]
	fn(&session)
	s.sessions[userID] = session
}

func (s *SessionStore) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
