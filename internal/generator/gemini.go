package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pool-tournament/internal/tournament"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the part of genai.Models the generator needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini asks the Gemini API for a round-robin schedule.
type Gemini struct {
	models contentGenerator
	model  string
}

var _ Generator = (*Gemini)(nil)

// NewGemini creates a Gemini generator for the given API key.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: models, model: model}
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, players []string, numDays, numRounds int) (tournament.Schedule, error) {
	log.Debug("Requesting schedule from Gemini", "model", g.model, "players", len(players), "days", numDays, "rounds", numRounds)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(players, numDays, numRounds)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   scheduleSchema,
		Temperature:      genai.Ptr[float32](0.5),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedSchedule)
	}
	return parseSchedule(resp.Text())
}

func buildPrompt(players []string, numDays, numRounds int) string {
	var b strings.Builder
	b.WriteString("You are a tournament scheduling expert. Your task is to generate a balanced round-robin style tournament schedule.\n\n")
	b.WriteString("Parameters:\n")
	fmt.Fprintf(&b, "- Players: %d\n", len(players))
	fmt.Fprintf(&b, "- Player Names: %s. You MUST use these exact names in the output.\n", strings.Join(players, ", "))
	fmt.Fprintf(&b, "- Days: %d\n", numDays)
	fmt.Fprintf(&b, "- Rounds per day: %d\n\n", numRounds)
	b.WriteString("Constraints:\n")
	b.WriteString("1. The tournament is 1-on-1.\n")
	b.WriteString("2. Each player must play exactly one game in every single round.\n")
	b.WriteString("3. The primary goal is fairness and variety. Ensure that every player faces every other unique opponent at least once over the course of the tournament.\n")
	b.WriteString("4. After all unique pairings have been scheduled, you can schedule repeat matchups if necessary to fill the remaining rounds, but try to space them out. Minimize repeat matchups as much as possible.\n\n")
	b.WriteString("Output the entire schedule in a JSON format that adheres to the provided schema. The output must be only the JSON object, with no surrounding text or markdown.")
	return b.String()
}

var scheduleSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day": {
				Type:        genai.TypeInteger,
				Description: "The day number, starting from 1.",
			},
			"rounds": {
				Type:        genai.TypeArray,
				Description: "The rounds scheduled for this day.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"round": {
							Type:        genai.TypeInteger,
							Description: "The round number for that day, starting from 1.",
						},
						"matchups": {
							Type:        genai.TypeArray,
							Description: "A list of all matchups for this round.",
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"players": {
										Type:        genai.TypeArray,
										Description: "An array containing two player names for the matchup, e.g., ['Player 1', 'Player 2']",
										Items:       &genai.Schema{Type: genai.TypeString},
									},
								},
								Required: []string{"players"},
							},
						},
					},
					Required: []string{"round", "matchups"},
				},
			},
		},
		Required: []string{"day", "rounds"},
	},
}

type wireDay struct {
	Day    int `json:"day"`
	Rounds []struct {
		Round    int `json:"round"`
		Matchups []struct {
			Players []string `json:"players"`
		} `json:"matchups"`
	} `json:"rounds"`
}

// parseSchedule turns the model output into a schedule with every score,
// winner and date unset.
func parseSchedule(text string) (tournament.Schedule, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedSchedule)
	}
	var days []wireDay
	if err := json.Unmarshal([]byte(text), &days); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSchedule, err)
	}

	schedule := make(tournament.Schedule, 0, len(days))
	for _, wd := range days {
		day := tournament.Day{Day: wd.Day, Rounds: make([]tournament.Round, 0, len(wd.Rounds))}
		for _, wr := range wd.Rounds {
			round := tournament.Round{Round: wr.Round, Matchups: make([]tournament.Matchup, 0, len(wr.Matchups))}
			for _, wm := range wr.Matchups {
				if len(wm.Players) != 2 {
					return nil, fmt.Errorf("%w: day %d round %d has a matchup with %d players", ErrMalformedSchedule, wd.Day, wr.Round, len(wm.Players))
				}
				round.Matchups = append(round.Matchups, tournament.Matchup{Players: [2]string{wm.Players[0], wm.Players[1]}})
			}
			day.Rounds = append(day.Rounds, round)
		}
		schedule = append(schedule, day)
	}
	return schedule, nil
}
