package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/pool-tournament/internal/database"
	"github.com/mauv0809/pool-tournament/internal/generator"
	"github.com/mauv0809/pool-tournament/internal/history"
	"github.com/mauv0809/pool-tournament/internal/storage"
	"github.com/mauv0809/pool-tournament/internal/tournament"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{"DB_NAME": "pool.db"}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	players := flag.Int("players", 8, "Roster size (8, 10 or 12)")
	playedDays := flag.Int("days", 4, "Number of days to fill with scores")
	past := flag.Int("history", 3, "Number of past tournaments to create")
	flag.Parse()

	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := storage.New(db)
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	roster := tournament.DefaultRoster(*players)
	if _, err := tournament.ValidateRoster(roster); err != nil {
		log.Fatalf("Invalid roster: %s", err)
	}

	schedule, err := generator.NewRoundRobin().Generate(context.Background(), roster, tournament.DaysPerTournament, tournament.RoundsPerDay(len(roster)))
	if err != nil {
		log.Fatalf("Failed to generate schedule: %s", err)
	}
	schedule = playDays(schedule, min(*playedDays, len(schedule)), rng)

	mustSetJSON(store, storage.KeyPlayers, roster)
	mustSetJSON(store, storage.KeySchedule, schedule)
	if err := store.Set(storage.KeyTitle, "Seeded League"); err != nil {
		log.Fatalf("Failed to store title: %s", err)
	}
	log.Info("Seeded current tournament", "players", len(roster), "played_days", *playedDays)

	repo := history.New(store)
	saved, err := repo.Load()
	if err != nil {
		log.Fatalf("Failed to load history: %s", err)
	}
	for i := 0; i < *past; i++ {
		full := playDays(schedule, len(schedule), rng)
		savedAt := time.Now().AddDate(0, -(*past-i), 0)
		saved = append(saved, tournament.SavedTournament{
			ID:        repo.NewID(savedAt),
			Title:     "Seeded Season " + strconv.Itoa(i+1),
			SavedDate: savedAt.Format("1/2/2006"),
			Stats:     tournament.SeasonTotals(full, roster),
		})
	}
	if err := repo.Save(saved); err != nil {
		log.Fatalf("Failed to store history: %s", err)
	}
	log.Info("Seeding complete!", "history", len(saved))
}

// playDays fills every matchup of the first n days with a race-to-10 result
// and marks the day's top scorer as winner.
func playDays(s tournament.Schedule, n int, rng *rand.Rand) tournament.Schedule {
	var err error
	for d := 0; d < n; d++ {
		for r, round := range s[d].Rounds {
			for m := range round.Matchups {
				winner := rng.IntN(2)
				s, err = tournament.SetScore(s, d, r, m, winner, strconv.Itoa(tournament.WinThreshold))
				if err != nil {
					log.Fatalf("Failed to seed score: %s", err)
				}
				s, err = tournament.SetScore(s, d, r, m, 1-winner, strconv.Itoa(rng.IntN(tournament.WinThreshold)))
				if err != nil {
					log.Fatalf("Failed to seed score: %s", err)
				}
			}
		}
		if board := tournament.DailyScoreboard(s[d]); len(board) > 0 {
			s, err = tournament.SetWinner(s, d, board[0].Name)
			if err != nil {
				log.Fatalf("Failed to seed winner: %s", err)
			}
		}
	}
	return s
}

func mustSetJSON(store storage.Store, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Failed to encode %s: %s", key, err)
	}
	if err := store.Set(key, string(data)); err != nil {
		log.Fatalf("Failed to store %s: %s", key, err)
	}
	fmt.Printf("Stored %s (%d bytes)\n", key, len(data))
}
