package history

import (
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/pool-tournament/internal/storage"
	"github.com/mauv0809/pool-tournament/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing key is an empty list", func(t *testing.T) {
		repo := New(storage.NewMock())
		saved, err := repo.Load()
		require.NoError(t, err)
		assert.Empty(t, saved)
		assert.NotNil(t, saved)
	})

	for name, raw := range map[string]string{
		"object":  `{"id":"1"}`,
		"garbage": `not json`,
		"broken":  `[{"id":`,
	} {
		t.Run("corrupted "+name+" is discarded", func(t *testing.T) {
			store := storage.NewMock()
			store.Put(storage.KeyPastTournaments, raw)
			repo := New(store)

			saved, err := repo.Load()
			require.NoError(t, err)
			assert.Empty(t, saved)
			assert.Equal(t, []string{storage.KeyPastTournaments}, store.RemoveCalls)
			_, ok := store.Value(storage.KeyPastTournaments)
			assert.False(t, ok)
		})
	}

	t.Run("round trip", func(t *testing.T) {
		store := storage.NewMock()
		repo := New(store)
		want := []tournament.SavedTournament{{
			ID: "1700000000000", Title: "Spring", SavedDate: "3/14/2024",
			Stats: []tournament.PlayerStats{{Name: "A", TotalPoints: 30, TotalWins: 3}},
		}}
		require.NoError(t, repo.Save(want))

		got, err := repo.Load()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestSave_PropagatesStoreErrors(t *testing.T) {
	store := storage.NewMock()
	store.SetFunc = func(key, value string) error { return errors.New("disk full") }
	repo := New(store)

	assert.Error(t, repo.Save(nil))
	require.Len(t, store.SetCalls, 1)
	assert.Equal(t, "[]", store.SetCalls[0].Value)
}

func TestNewID_IsStrictlyIncreasing(t *testing.T) {
	repo := New(storage.NewMock())
	fixed := time.UnixMilli(1_700_000_000_000)

	assert.Equal(t, "1700000000000", repo.NewID(fixed))
	assert.Equal(t, "1700000000001", repo.NewID(fixed))
	assert.Equal(t, "1700000000002", repo.NewID(fixed.Add(-time.Hour)), "a clock going backwards must not reuse ids")
	assert.Equal(t, "1700000060000", repo.NewID(fixed.Add(time.Minute)))
}

func TestNewID_ContinuesAfterLoadedIDs(t *testing.T) {
	store := storage.NewMock()
	store.Put(storage.KeyPastTournaments, `[{"id":"5000","title":"x","savedDate":"1/1/2024","stats":[]}]`)
	repo := New(store)

	_, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "5001", repo.NewID(time.UnixMilli(10)))
}

func TestRemoveAndNewest(t *testing.T) {
	saved := []tournament.SavedTournament{{ID: "900"}, {ID: "1000"}, {ID: "20"}}

	assert.Equal(t, []string{"1000", "900", "20"}, ids(Newest(saved)))
	assert.Equal(t, "900", saved[0].ID, "input must not be reordered")

	rest, err := Remove(saved, "900")
	require.NoError(t, err)
	assert.Equal(t, []string{"1000", "20"}, ids(rest))
	assert.Len(t, saved, 3)

	_, err = Remove(saved, "42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func ids(saved []tournament.SavedTournament) []string {
	out := make([]string, len(saved))
	for i, s := range saved {
		out[i] = s.ID
	}
	return out
}
