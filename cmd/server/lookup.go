package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"onboard/internal/country"
	"onboard/internal/strength"
)

var strengthCmd = &cobra.Command{
	Use:   "strength <password>",
	Short: "Print the strength assessment for a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(strength.Assess(args[0]))
	},
}

var countriesCmd = &cobra.Command{
	Use:   "countries [query]",
	Short: "Search the country list by name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCountries,
}

var countriesFlagBase string

func init() {
	countriesCmd.Flags().StringVar(&countriesFlagBase, "flag-base-url", "", "Base URL for flag images")
	rootCmd.AddCommand(strengthCmd, countriesCmd)
}

func runCountries(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	flags := country.FlagResolver{BaseURL: countriesFlagBase}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, rec := range country.NewIndex(country.Dataset()).Search(query) {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Code, rec.Name, flags.URL(rec.Code)); err != nil {
			return err
		}
	}
	return w.Flush()
}
