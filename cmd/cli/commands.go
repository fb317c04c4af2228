package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(winnerCmd)
	rootCmd.AddCommand(dateCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(matchupCmd)
	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(subCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(metricsCmd)

	statsCmd.Flags().Bool("cumulative", false, "Show the drop-lowest-day table")
	statsCmd.Flags().String("sort", "", "Sort by points or wins")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/tournament", nil)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new schedule for the current players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/tournament/generate", nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default players and title and generate a new schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/tournament/reset", nil)
	},
}

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "Save the tournament to history and start a new one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/tournament/end", nil)
	},
}

var titleCmd = &cobra.Command{
	Use:   "title <title>",
	Short: "Rename the tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPut, "/tournament/title", map[string]string{"title": args[0]})
	},
}

var playersCmd = &cobra.Command{
	Use:   "players <name>...",
	Short: "Replace the roster (8, 10 or 12 names)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPut, "/tournament/players", map[string][]string{"players": args})
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <day> <round> <matchup> <slot> [value]",
	Short: "Set a score; omit the value to clear it",
	Args:  cobra.RangeArgs(4, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := indices(args[:4])
		if err != nil {
			return err
		}
		value := ""
		if len(args) == 5 {
			value = args[4]
		}
		body := map[string]any{"round": idx[1], "matchup": idx[2], "slot": idx[3], "value": value}
		return performRequest(http.MethodPut, fmt.Sprintf("/days/%d/score", idx[0]), body)
	},
}

var winnerCmd = &cobra.Command{
	Use:   "winner <day> [name]",
	Short: "Set the winner of a day; omit the name to clear it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := indices(args[:1])
		if err != nil {
			return err
		}
		winner := ""
		if len(args) == 2 {
			winner = args[1]
		}
		return performRequest(http.MethodPut, fmt.Sprintf("/days/%d/winner", idx[0]), map[string]string{"winner": winner})
	},
}

var dateCmd = &cobra.Command{
	Use:   "date <day> [date]",
	Short: "Set the free-text date of a day; omit the date to clear it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := indices(args[:1])
		if err != nil {
			return err
		}
		date := ""
		if len(args) == 2 {
			date = args[1]
		}
		return performRequest(http.MethodPut, fmt.Sprintf("/days/%d/date", idx[0]), map[string]string{"date": date})
	},
}

var matchupCmd = &cobra.Command{
	Use:   "matchup <day> <round> <matchup> <player> <player>",
	Short: "Replace both players of a matchup and clear its scores",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := indices(args[:3])
		if err != nil {
			return err
		}
		endpoint := fmt.Sprintf("/days/%d/rounds/%d/matchups/%d/players", idx[0], idx[1], idx[2])
		return performRequest(http.MethodPut, endpoint, map[string][2]string{"players": {args[3], args[4]}})
	},
}

var shuffleCmd = &cobra.Command{
	Use:   "shuffle <day> <round>",
	Short: "Shuffle the matchup order of a round",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := indices(args)
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/days/%d/rounds/%d/shuffle", idx[0], idx[1]), nil)
	},
}

var lockCmd = &cobra.Command{
	Use:   "lock <day>",
	Short: "Lock or unlock a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := indices(args)
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, fmt.Sprintf("/days/%d/lock", idx[0]), nil)
	},
}

var subCmd = &cobra.Command{
	Use:   "sub <day> <original> <substitute>",
	Short: "Substitute a player for the rest of a day",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := indices(args[:1])
		if err != nil {
			return err
		}
		body := map[string]string{"original": args[1], "substitute": args[2]}
		return performRequest(http.MethodPost, fmt.Sprintf("/days/%d/substitutions", idx[0]), body)
	},
}

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard <day>",
	Short: "Show the scoreboard of a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := indices(args)
		if err != nil {
			return err
		}
		return performRequest(http.MethodGet, fmt.Sprintf("/days/%d/scoreboard", idx[0]), nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show player statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cumulative, _ := cmd.Flags().GetBool("cumulative"); cumulative {
			return performRequest(http.MethodGet, "/stats/cumulative", nil)
		}
		endpoint := "/stats"
		if sort, _ := cmd.Flags().GetString("sort"); sort != "" {
			endpoint += "?sort=" + url.QueryEscape(sort)
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/history", nil)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a past tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/history/"+url.PathEscape(args[0]), nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

// indices converts 1-based command line numbers to the 0-based indices the API uses.
func indices(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid number %q", arg)
		}
		out[i] = n - 1
	}
	return out, nil
}

func performRequest(method, endpoint string, body any) error {
	target := host + endpoint
	if dryRun {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		target += sep + "dry_run=true"
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
