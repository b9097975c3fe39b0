package bots_monitor

import (
	"testing"

	"universal-bot/internal/features/wallets"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreDefaults(t *testing.T) {
	store := NewSessionStore()

	session := store.Get(1)
	assert.Equal(t, ModeNone, session.Mode)
	assert.False(t, session.AwaitingAddress)
	assert.False(t, session.AwaitingForward)
}

func TestSessionStoreUpdateAndReset(t *testing.T) {
	store := NewSessionStore()

	store.Update(1, func(s *Session) {
		s.AwaitingAddress = true
		s.PendingCoin = wallets.CoinBTC
	})

	session := store.Get(1)
	assert.True(t, session.AwaitingAddress)
	assert.Equal(t, wallets.CoinBTC, session.PendingCoin)

	// Other users are unaffected.
	assert.False(t, store.Get(2).AwaitingAddress)

	store.Reset(1)
	assert.False(t, store.Get(1).AwaitingAddress)
}
