package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "treasury-cli",
		Short: "Treasury CLI tool",
		Long:  `A command line interface for interacting with the treasury API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the treasury API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Session token (optional)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		clockCmd(),
		fundsCmd(),
		balanceCmd(),
		ledgerCmd(),
		ordersCmd(),
		portfolioCmd(),
		auditCmd(),
		entitiesCmd(),
		loginCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func clockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Show the simulated date",
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodGet, "/api/v1/clock/", "")
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "advance",
		Short: "Advance the clock one day and settle whatever comes due",
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodPost, "/api/v1/clock/advance", "")
		},
	})

	return cmd
}

func fundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funds",
		Short: "Fund operations",
	}

	var amount, method, reference string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add funds to the ledger",
		Run: func(cmd *cobra.Command, args []string) {
			body := fmt.Sprintf(`{"amount":%q,"method":%q,"reference":%q}`, amount, method, reference)
			call(http.MethodPost, "/api/v1/funds/", body)
		},
	}
	addCmd.Flags().StringVar(&amount, "amount", "", "Amount to deposit")
	addCmd.Flags().StringVar(&method, "method", "UPI", "Deposit method (UPI, RTGS, NEFT)")
	addCmd.Flags().StringVar(&reference, "reference", "", "Bank reference")

	var wAmount, wReference string
	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw available funds",
		Run: func(cmd *cobra.Command, args []string) {
			body := fmt.Sprintf(`{"amount":%q,"reference":%q}`, wAmount, wReference)
			call(http.MethodPost, "/api/v1/funds/withdraw", body)
		},
	}
	withdrawCmd.Flags().StringVar(&wAmount, "amount", "", "Amount to withdraw")
	withdrawCmd.Flags().StringVar(&wReference, "reference", "", "Payment reference")

	cmd.AddCommand(addCmd, withdrawCmd)
	return cmd
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show cash balances",
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodGet, "/api/v1/balances", "")
		},
	}
}

func ledgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "List ledger entries",
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodGet, "/api/v1/ledger", "")
		},
	}
}

func ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List orders",
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodGet, "/api/v1/orders/", "")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodGet, "/api/v1/orders/"+args[0], "")
		},
	})

	var slug, name, rating, amount, yield string
	var tenorDays int
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an investment order",
		Run: func(cmd *cobra.Command, args []string) {
			body := fmt.Sprintf(
				`{"instrument_slug":%q,"instrument_name":%q,"rating":%q,"amount":%q,"expected_yield":%q,"tenor_days":%d}`,
				slug, name, rating, amount, yield, tenorDays,
			)
			call(http.MethodPost, "/api/v1/orders/", body)
		},
	}
	createCmd.Flags().StringVar(&slug, "instrument", "", "Instrument slug")
	createCmd.Flags().StringVar(&name, "name", "", "Instrument display name")
	createCmd.Flags().StringVar(&rating, "rating", "", "Credit rating")
	createCmd.Flags().StringVar(&amount, "amount", "", "Investment amount")
	createCmd.Flags().StringVar(&yield, "yield", "", "Expected yield percent")
	createCmd.Flags().IntVar(&tenorDays, "tenor", 0, "Tenor in days")

	var comment string
	approveCmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending order",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodPost, "/api/v1/orders/"+args[0]+"/approve", fmt.Sprintf(`{"comment":%q}`, comment))
		},
	}
	approveCmd.Flags().StringVar(&comment, "comment", "", "Approval comment")

	var reason string
	rejectCmd := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending order",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodPost, "/api/v1/orders/"+args[0]+"/reject", fmt.Sprintf(`{"reason":%q}`, reason))
		},
	}
	rejectCmd.Flags().StringVar(&reason, "reason", "", "Rejection reason")

	cmd.AddCommand(createCmd, approveCmd, rejectCmd)
	return cmd
}

func portfolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Show active holdings",
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodGet, "/api/v1/portfolio", "")
		},
	}
}

func auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Show the audit trail",
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodGet, "/api/v1/audit", "")
		},
	}
}

func entitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List onboarded entities",
		Run: func(cmd *cobra.Command, args []string) {
			call(http.MethodGet, "/api/v1/entities", "")
		},
	}
}

func loginCmd() *cobra.Command {
	var email, name, role string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a session token",
		Run: func(cmd *cobra.Command, args []string) {
			body := fmt.Sprintf(`{"email":%q,"name":%q,"role":%q}`, email, name, role)
			call(http.MethodPost, "/api/v1/auth/login", body)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Login email")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", "maker", "Role (maker or checker)")
	return cmd
}

// call performs the request and prints the response body, exiting non-zero on
// transport errors or non-2xx statuses.
func call(method, path, body string) {
	req, err := buildRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		fmt.Println(string(raw))
	} else {
		printJSON(decoded)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Printf("Request failed (Status: %d)\n", resp.StatusCode)
		os.Exit(1)
	}
}

func buildRequest(method, url, body string) (*http.Request, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
