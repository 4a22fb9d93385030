package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir(), NamespaceUser)

	sess := &Session{
		Token: "abc123",
		Member: Member{
			ID:          1,
			Name:        "Asha",
			PhoneNumber: "9000000000",
			Role:        RoleUser,
			Balance:     500,
		},
	}

	require.NoError(t, store.Save(sess))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.Token)
	assert.Equal(t, "Asha", got.Member.Name)
	assert.Equal(t, RoleUser, got.Member.Role)
	assert.Equal(t, 500.0, got.Member.Balance)
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir(), NamespaceUser)

	got, err := store.Load()
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsNoSession(err))
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, NamespaceUser)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	_, err := store.Load()
	require.Error(t, err)
	assert.False(t, IsNoSession(err))
}

func TestFileStoreRejectsTokenlessRecord(t *testing.T) {
	// A record with an identity but no token must never hydrate a session.
	dir := t.TempDir()
	store := NewFileStore(dir, NamespaceUser)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"member":{"id":1,"name":"Asha"}}`), 0o600))

	_, err := store.Load()
	require.Error(t, err)
}

func TestFileStoreClearIdempotent(t *testing.T) {
	store := NewFileStore(t.TempDir(), NamespaceUser)

	require.NoError(t, store.Save(&Session{Token: "t", Member: Member{ID: 1}}))
	require.NoError(t, store.Clear())

	// Clearing an empty store is not an error.
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.True(t, IsNoSession(err))
}

func TestFileStoreNamespacesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	userStore := NewFileStore(dir, NamespaceUser)
	adminStore := NewFileStore(dir, NamespaceAdmin)

	require.NoError(t, userStore.Save(&Session{Token: "user-token", Member: Member{ID: 1, Role: RoleUser}}))
	require.NoError(t, adminStore.Save(&Session{Token: "admin-token", Member: Member{ID: 2, Role: RoleAdmin}}))

	userSess, err := userStore.Load()
	require.NoError(t, err)
	adminSess, err := adminStore.Load()
	require.NoError(t, err)

	assert.Equal(t, "user-token", userSess.Token)
	assert.Equal(t, "admin-token", adminSess.Token)

	// Clearing one namespace leaves the other intact.
	require.NoError(t, userStore.Clear())
	_, err = adminStore.Load()
	require.NoError(t, err)
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, NamespaceUser)
	require.NoError(t, store.Save(&Session{Token: "t", Member: Member{ID: 1}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.Path()), entries[0].Name())
}
