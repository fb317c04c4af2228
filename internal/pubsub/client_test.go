package pubsub

import (
	"testing"

	"github.com/mauv0809/pool-tournament/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_TournamentSaved(t *testing.T) {
	event := TournamentSaved{Tournament: tournament.SavedTournament{
		ID:        "1700000000000",
		Title:     "Spring",
		SavedDate: "3/14/2024",
		Stats:     []tournament.PlayerStats{{Name: "Ann", TotalPoints: 21, TotalWins: 2}},
	}}

	data, err := Encode(event)
	require.NoError(t, err)

	var got TournamentSaved
	require.NoError(t, NewMock().ProcessMessage(data, &got))
	assert.Equal(t, event, got)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	var got TournamentSaved
	assert.Error(t, Decode([]byte{0xc1}, &got))
}
