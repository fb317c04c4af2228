package notifier

import "github.com/mauv0809/pool-tournament/internal/tournament"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For archived tournaments
	SendTournamentSaved(saved tournament.SavedTournament, dryRun bool) error
}
