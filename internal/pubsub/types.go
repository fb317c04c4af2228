package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/pool-tournament/internal/tournament"
)

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub.
// The value doubles as the topic name.
type EventType string

const (
	EventScheduleGenerated EventType = "schedule-generated"
	EventTournamentSaved   EventType = "tournament-saved"
)

// ScheduleGenerated is published when a generation run commits a schedule.
type ScheduleGenerated struct {
	RunID   string   `msgpack:"runId"`
	Title   string   `msgpack:"title"`
	Players []string `msgpack:"players"`
	Days    int      `msgpack:"days"`
	Rounds  int      `msgpack:"rounds"`
}

// TournamentSaved is published after a tournament is archived.
type TournamentSaved struct {
	Tournament tournament.SavedTournament `msgpack:"tournament"`
}

// PushRequest is the JSON body of a Pub/Sub push delivery.
type PushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"`
	} `json:"message"`
}
