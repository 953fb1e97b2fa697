package cache

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := New(afero.NewMemMapFs(), "cache", "icalendrier.xml", ttl)
	require.NoError(t, err)
	return store
}

func TestStore_MissBeforePut(t *testing.T) {
	store := newTestStore(t, time.Minute)

	_, _, err := store.Get()
	require.ErrorIs(t, err, ErrMiss)
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	store := newTestStore(t, time.Minute)

	const text = "<Root>\n  <Eleves/>\n</Root>\n"
	require.NoError(t, store.Put(text))

	got, age, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, text, got)
	assert.GreaterOrEqual(t, age, time.Duration(0))
	assert.True(t, store.Fresh(age))
}

func TestStore_PutOverwritesSingleEntry(t *testing.T) {
	store := newTestStore(t, time.Minute)

	require.NoError(t, store.Put("first"))
	require.NoError(t, store.Put("second"))

	got, _, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStore_FreshnessWindow(t *testing.T) {
	store := newTestStore(t, 50*time.Millisecond)

	require.NoError(t, store.Put("data"))

	_, age, err := store.Get()
	require.NoError(t, err)
	assert.True(t, store.Fresh(age))

	time.Sleep(80 * time.Millisecond)

	_, age, err = store.Get()
	require.NoError(t, err)
	assert.False(t, store.Fresh(age))
}

func TestStore_Defaults(t *testing.T) {
	store, err := New(afero.NewMemMapFs(), "", "icalendrier.xml", 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultTTL, store.TTL())
	assert.Contains(t, store.Path(), appName)
}

func TestStore_RequiresEntryName(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), "cache", "", time.Minute)
	require.Error(t, err)
}
