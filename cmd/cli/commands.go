package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var leagueID string

func init() {
	standingsCmd.Flags().StringVar(&leagueID, "league", "", "Only show this league")
	matchesCmd.Flags().StringVar(&leagueID, "league", "", "Only show this league")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(leaguesCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(registrationsCmd)
	rootCmd.AddCommand(paymentCmd)
	rootCmd.AddCommand(approveCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "List the leagues",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/leagues", nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the standings table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/standings"+leagueQuery(), nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List matches and results",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/matches"+leagueQuery(), nil)
	},
}

var registrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "List team registrations (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/admin/registrations", nil)
	},
}

var paymentCmd = &cobra.Command{
	Use:   "payment <registration-id> <pending|paid|rejected>",
	Short: "Set the payment status of a registration (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]string{"payment_status": args[1]}
		return performRequest(http.MethodPut, "/api/admin/registrations/"+url.PathEscape(args[0])+"/payment-status", body)
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <registration-id>",
	Short: "Approve a registration into an official team (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/admin/registrations/"+url.PathEscape(args[0])+"/approve", nil)
	},
}

func leagueQuery() string {
	if leagueID == "" {
		return ""
	}
	return "?league_id=" + url.QueryEscape(leagueID)
}

func performRequest(method, endpoint string, payload any) error {
	target := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
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
