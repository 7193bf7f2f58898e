package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "fairdm-admin",
		Short:   "Administrative tooling for the FairDM plugin registry",
		Version: version,
	}

	rootCmd.AddCommand(
		newCheckCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
