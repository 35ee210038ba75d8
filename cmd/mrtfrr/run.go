package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/routeflow/mrtfrr/driver"
	"github.com/routeflow/mrtfrr/ioformat"
)

var (
	topoFile      string
	profileFile   string
	prefixFile    string
	outPrefix     string
	gadagRootID   int
	profileID     int
	area          int
	seed          int64
	strictMode    bool
	raisedNodeIDs []int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute MRTs and alternates for a CSV topology file",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&topoFile, "topology", "t", "", "path to the base topology CSV (required)")
	f.StringVar(&profileFile, "profile-file", "", "path to the .profile companion file (optional)")
	f.StringVar(&prefixFile, "prefix-file", "", "path to the .prefix companion file (optional)")
	f.StringVarP(&outPrefix, "out", "o", "mrtfrr_out", "output file prefix for the CSV writers")
	f.IntVarP(&gadagRootID, "gadag-root", "g", 0, "node_id to designate as the test GADAG root (required)")
	f.IntVar(&profileID, "profile", 0, "MRT profile ID to compute for")
	f.IntVar(&area, "area", 0, "IGP area to restrict island identification to")
	f.Int64Var(&seed, "seed", 1, "random seed for USE_RED_OR_BLUE resolution")
	f.BoolVar(&strictMode, "strict", false, "panic instead of warn on an impossible decision-table arm")
	f.IntSliceVar(&raisedNodeIDs, "raise-priority", nil, "node_ids whose GADAG-root selection priority should be raised")
	runCmd.MarkFlagRequired("topology")
	runCmd.MarkFlagRequired("gadag-root")
}

func runRun(cmd *cobra.Command, args []string) error {
	t, err := ioformat.ReadTopology(topoFile)
	if err != nil {
		return fmt.Errorf("mrtfrr run: %w", err)
	}
	if profileFile != "" {
		if err := ioformat.ReadProfiles(t, profileFile); err != nil {
			return fmt.Errorf("mrtfrr run: %w", err)
		}
	}
	if prefixFile != "" {
		if err := ioformat.ReadPrefixes(t, prefixFile); err != nil {
			return fmt.Errorf("mrtfrr run: %w", err)
		}
	}

	opts := []driver.Option{
		driver.WithTestGR(gadagRootID),
		driver.WithProfile(profileID),
		driver.WithArea(area),
		driver.WithRand(rand.New(rand.NewSource(seed))),
	}
	if strictMode {
		opts = append(opts, driver.WithStrict())
	}
	if len(raisedNodeIDs) > 0 {
		opts = append(opts, driver.WithRaisedPriority(raisedNodeIDs...))
	}
	cfg := driver.NewRunConfig(opts...)

	if err := driver.RunForAllSources(t, cfg, log); err != nil {
		return fmt.Errorf("mrtfrr run: %w", err)
	}

	if err := ioformat.WriteGADAG(t, outPrefix); err != nil {
		return fmt.Errorf("mrtfrr run: %w", err)
	}
	if err := ioformat.WriteBothMRTs(t, outPrefix); err != nil {
		return fmt.Errorf("mrtfrr run: %w", err)
	}
	if err := ioformat.WriteAlternates(t, outPrefix); err != nil {
		return fmt.Errorf("mrtfrr run: %w", err)
	}

	log.WithField("out_prefix", outPrefix).Info("MRT-FRR computation complete")
	return nil
}
