package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of automata",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(out, tui.NewStyler(out))
		}
		fmt.Fprintf(out, "automata version %s\n", strings.TrimSpace(automata.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the banner")
}
