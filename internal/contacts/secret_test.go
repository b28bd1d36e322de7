package contacts_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifespan/internal/config"
	"github.com/tartampluch/go-lifespan/internal/contacts"
	"github.com/zalando/go-keyring"
)

func TestPassword_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := contacts.KeyringStore{}

	require.NoError(t, contacts.StorePassword(store, "alice", "s3cret"))

	pass, err := contacts.ResolvePassword(store, "alice")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pass)
}

func TestResolvePassword_Missing(t *testing.T) {
	keyring.MockInit()

	pass, err := contacts.ResolvePassword(contacts.KeyringStore{}, "nobody")
	require.NoError(t, err)
	assert.Empty(t, pass)

	pass, err = contacts.ResolvePassword(contacts.KeyringStore{}, "")
	require.NoError(t, err)
	assert.Empty(t, pass)
}

func TestPassword_BackendFailure(t *testing.T) {
	backend := errors.New("dbus unavailable")
	keyring.MockInitWithError(backend)

	_, err := contacts.ResolvePassword(contacts.KeyringStore{}, "alice")
	assert.ErrorIs(t, err, backend)
	assert.Contains(t, err.Error(), config.ErrKeyring)

	err = contacts.StorePassword(contacts.KeyringStore{}, "alice", "x")
	assert.ErrorIs(t, err, backend)

	err = contacts.StorePassword(contacts.KeyringStore{}, "", "x")
	assert.EqualError(t, err, config.ErrUserMissing)
}
