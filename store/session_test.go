package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essience-store/storefront-api/models"
)

func TestHydrateWithNothingPersisted(t *testing.T) {
	s := NewSessionStore(NewMemoryKV(), nil)
	assert.Nil(t, s.Current())
}

func TestHydrateWithMalformedUserRecord(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set("token", "tok123")
	kv.Set("user", "<<<garbage>>>")

	s := NewSessionStore(kv, nil)
	assert.Nil(t, s.Current(), "corrupt user record must hydrate to logged out")
}

func TestSessionRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	s := NewSessionStore(kv, nil)

	s.SetSession("tok123", models.User{ID: "u1", Email: "a@b.c"})

	session := s.Current()
	require.NotNil(t, session)
	assert.Equal(t, "tok123", session.Token)
	assert.Equal(t, "u1", session.User.ID)

	// A fresh store sees the persisted session.
	again := NewSessionStore(kv, nil)
	require.NotNil(t, again.Current())
	assert.Equal(t, "a@b.c", again.Current().User.Email)
}

func TestLogoutClearsEverything(t *testing.T) {
	kv := NewMemoryKV()
	rec := &toastRecorder{}
	s := NewSessionStore(kv, rec)
	s.SetSession("tok123", models.User{ID: "u1"})

	s.Logout()

	assert.Nil(t, s.Current())
	_, ok := kv.Get("token")
	assert.False(t, ok)
	_, ok = kv.Get("user")
	assert.False(t, ok)
	assert.Equal(t, 1, rec.count())
}
