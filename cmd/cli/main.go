package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerbook-cli",
		Short: "LedgerBook CLI tool",
		Long:  `A command line interface for interacting with the LedgerBook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the LedgerBook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Party commands
	partyCmd := &cobra.Command{
		Use:   "party",
		Short: "Party operations",
	}

	var partyName, partyAddress, partyCountry, partyTaxNumber string
	createPartyCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a party",
		Run: func(cmd *cobra.Command, args []string) {
			createParty(partyName, partyAddress, partyCountry, partyTaxNumber)
		},
	}
	createPartyCmd.Flags().StringVar(&partyName, "name", "", "Display name of the party")
	createPartyCmd.Flags().StringVar(&partyAddress, "address", "", "Postal address")
	createPartyCmd.Flags().StringVar(&partyCountry, "country", "", "ISO 3166-1 alpha-2 country code")
	createPartyCmd.Flags().StringVar(&partyTaxNumber, "tax-number", "", "Tax registration number")
	_ = createPartyCmd.MarkFlagRequired("name")

	getPartyCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get a party by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/parties/" + args[0])
		},
	}

	partyCmd.AddCommand(createPartyCmd, getPartyCmd)
	rootCmd.AddCommand(partyCmd)

	// Ledger item commands
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Ledger item operations",
	}

	getItemCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get a ledger item by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/ledger-items/" + args[0])
		},
	}

	var listSentBy, listReceivedBy, listParty, listStatus, listCurrency string
	listItemsCmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger items",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/ledger-items" + listItemsQuery(listSentBy, listReceivedBy, listParty, listStatus, listCurrency))
		},
	}
	listItemsCmd.Flags().StringVar(&listSentBy, "sent-by", "", "Filter by sender party ID")
	listItemsCmd.Flags().StringVar(&listReceivedBy, "received-by", "", "Filter by recipient party ID")
	listItemsCmd.Flags().StringVar(&listParty, "party", "", "Filter by sender or recipient party ID")
	listItemsCmd.Flags().StringVar(&listStatus, "status", "", "Comma-separated list of statuses")
	listItemsCmd.Flags().StringVar(&listCurrency, "currency", "", "Filter by currency code")

	itemCmd.AddCommand(getItemCmd, listItemsCmd)
	rootCmd.AddCommand(itemCmd)

	// Summary commands
	var summaryOther, summaryStatus string
	summaryCmd := &cobra.Command{
		Use:   "summary [party-id]",
		Short: "Account summary for a party viewpoint",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(summaryPath(args[0], summaryOther, summaryStatus))
		},
	}
	summaryCmd.Flags().StringVar(&summaryOther, "other", "", "Counterparty ID (omit for all counterparties)")
	summaryCmd.Flags().StringVar(&summaryStatus, "status", "", "Comma-separated list of statuses")
	rootCmd.AddCommand(summaryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func summaryPath(partyID, other, status string) string {
	query := url.Values{}
	if other != "" {
		query.Set("other", other)
	}
	if status != "" {
		query.Set("status", status)
	}

	path := "/api/v1/parties/" + partyID + "/summary"
	if other == "" {
		path = "/api/v1/parties/" + partyID + "/summaries"
	}
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return path
}

func listItemsQuery(sentBy, receivedBy, party, status, currency string) string {
	query := url.Values{}
	for key, value := range map[string]string{
		"sent_by":     sentBy,
		"received_by": receivedBy,
		"party":       party,
		"status":      status,
		"currency":    currency,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}

	if encoded := query.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

func createParty(name, address, country, taxNumber string) {
	payload := map[string]string{"display_name": name}
	if address != "" {
		payload["address"] = address
	}
	if country != "" {
		payload["country_code"] = country
	}
	if taxNumber != "" {
		payload["tax_number"] = taxNumber
	}

	body, _ := json.Marshal(payload)
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/parties", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(strings.TrimSpace(string(body)))
		return
	}
	fmt.Println(pretty.String())
}
