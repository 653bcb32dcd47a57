package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(removePlayerCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(randomizeCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/health", "")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/api/players", "")
	},
}

var playerCmd = &cobra.Command{
	Use:   "player [id]",
	Short: "Show a single player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/api/players/"+args[0], "")
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player [name]",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/api/players", fmt.Sprintf(`{"name":%q}`, args[0]))
	},
}

var removePlayerCmd = &cobra.Command{
	Use:   "remove-player [id]",
	Short: "Delete a player and their memberships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("DELETE", "/api/players/"+args[0], "")
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the current teams with members and captains",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/api/teams", "")
	},
}

var randomizeCmd = &cobra.Command{
	Use:   "randomize",
	Short: "Draw fresh random teams from the active roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/api/teams/random", "")
	},
}

var resultCmd = &cobra.Command{
	Use:   "result [winning-team-id]",
	Short: "Record a match result for the winning team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/api/teams/match-result", fmt.Sprintf(`{"winningTeamId":%s}`, args[0]))
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the standings board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/api/standings", "")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/metrics", "")
	},
}

func performRequest(method, endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
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
