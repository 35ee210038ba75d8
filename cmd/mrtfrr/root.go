// Command mrtfrr computes Maximally Redundant Trees and fast-reroute
// alternates for an IP/IGP topology (the IETF MRT-FRR draft's
// Lowpoint-based GADAG algorithm).
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	log     = logrus.StandardLogger()
)

var rootCmd = &cobra.Command{
	Use:   "mrtfrr",
	Short: "Compute Maximally Redundant Trees and FRR alternates for an IGP topology",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.AddCommand(runCmd, exampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
