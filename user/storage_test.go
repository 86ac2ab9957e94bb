package user

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageLoadPrefersDurable(t *testing.T) {
	storage := testStorage(t)
	require.NoError(t, storage.Save(sampleAuth("session-token"), false))
	require.NoError(t, storage.Save(sampleAuth("durable-token"), true))

	auth, err := storage.Load()
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, "durable-token", auth.Token)
}

func TestFileStorageLoadWithNothingPersisted(t *testing.T) {
	auth, err := testStorage(t).Load()
	require.NoError(t, err)
	assert.Nil(t, auth)
}

func TestFileStorageCorruptedBlobBehavesLikeAbsent(t *testing.T) {
	storage := testStorage(t)
	require.NoError(t, os.WriteFile(storage.durablePath, []byte("{not json"), 0o600))
	require.NoError(t, storage.Save(sampleAuth("session-token"), false))

	auth, err := storage.Load()
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, "session-token", auth.Token)

	require.NoError(t, os.WriteFile(storage.sessionPath, []byte("also not json"), 0o600))
	auth, err = storage.Load()
	require.NoError(t, err)
	assert.Nil(t, auth)
}

func TestFileStorageSaveRoundTrip(t *testing.T) {
	storage := testStorage(t)
	saved := sampleAuth("token-abc")
	require.NoError(t, storage.Save(saved, true))

	loaded, err := storage.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, *loaded)
}

func TestFileStorageClearRemovesBothLocations(t *testing.T) {
	storage := testStorage(t)
	require.NoError(t, storage.Save(sampleAuth("a"), true))
	require.NoError(t, storage.Save(sampleAuth("b"), false))

	require.NoError(t, storage.Clear())

	_, durableErr := os.Stat(storage.durablePath)
	_, sessionErr := os.Stat(storage.sessionPath)
	assert.ErrorIs(t, durableErr, os.ErrNotExist)
	assert.ErrorIs(t, sessionErr, os.ErrNotExist)

	assert.NoError(t, storage.Clear())
}
