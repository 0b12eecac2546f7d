package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront schema and data tooling",
	Long:  "Storefront manages the e-commerce database schema: migrations, seed data and a demo walkthrough of the referential-integrity rules.",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(expireCouponsCmd)
	rootCmd.AddCommand(schedulerCmd)
}
