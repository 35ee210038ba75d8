// Package ioformat implements the CSV topology/profile/prefix readers and
// the four CSV output writers of §6. The specification puts this file I/O
// out of scope for the MRT core itself ("thin collaborators whose only
// obligation is to populate the in-memory topology... and to serialise the
// in-memory results"), and no pack example wires a third-party CSV or
// structured-file library for this shape of row-per-link format, so this
// package is standard-library `encoding/csv` throughout.
//
// Grounded on the original's Create_Topology_From_File,
// Add_Profile_IDs_from_File, Add_Prefix_Advertisements_From_File, and
// Add_Prefixes_for_Non_Island_Nodes in original_source/.
package ioformat

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/routeflow/mrtfrr/topology"
)

// ReadTopology parses a base topology CSV (one link per line:
// local_node,remote_node,metric[,reverse_metric]) into a fresh Topology,
// creating every referenced node on first sight (§6).
func ReadTopology(path string) (*topology.Topology, error) {
	rows, err := readCSVRows(path)
	if err != nil {
		return nil, err
	}

	t := topology.NewTopology()
	seen := make(map[int]bool)
	for _, row := range rows {
		for _, col := range row[:2] {
			id, err := strconv.Atoi(col)
			if err != nil {
				return nil, fmt.Errorf("ioformat: %s: bad node_id %q: %w", path, col, err)
			}
			if !seen[id] {
				seen[id] = true
				if _, err := t.AddNode(id); err != nil {
					return nil, fmt.Errorf("ioformat: %s: %w", path, err)
				}
			}
		}
	}

	for _, row := range rows {
		local, _ := strconv.Atoi(row[0])
		remote, _ := strconv.Atoi(row[1])
		metric, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("ioformat: %s: bad metric %q: %w", path, row[2], err)
		}
		reverseMetric := metric
		if len(row) > 3 {
			reverseMetric, err = strconv.Atoi(row[3])
			if err != nil {
				return nil, fmt.Errorf("ioformat: %s: bad reverse_metric %q: %w", path, row[3], err)
			}
		}
		if _, _, err := t.AddLink(local, remote, metric, reverseMetric); err != nil {
			return nil, fmt.Errorf("ioformat: %s: %w", path, err)
		}
	}
	return t, nil
}

// ReadProfiles applies a ".profile" file (node_id,profile_id per line) to t,
// replacing every node's ProfileIDs with the ones listed for it. A missing
// file is not an error: every node keeps its default [0] membership (§6,
// §7 "Absent companion file").
func ReadProfiles(t *topology.Topology, path string) error {
	rows, err := readCSVRows(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, n := range t.AllNodes() {
		n.ProfileIDs = nil
	}
	for _, row := range rows {
		nodeID, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("ioformat: %s: bad node_id %q: %w", path, row[0], err)
		}
		profileID, err := strconv.Atoi(row[1])
		if err != nil {
			return fmt.Errorf("ioformat: %s: bad profile_id %q: %w", path, row[1], err)
		}
		n, err := t.NodeOrErr(nodeID)
		if err != nil {
			return fmt.Errorf("ioformat: %s: %w", path, err)
		}
		n.ProfileIDs = append(n.ProfileIDs, profileID)
	}
	return nil
}

// ReadPrefixes applies a ".prefix" file (prefix_id,advertising_node_id,cost
// per line) to t. A prefix_id outside 2000..2999 is skipped, not fatal
// (§7). A missing file is not an error.
func ReadPrefixes(t *topology.Topology, path string) error {
	rows, err := readCSVRows(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, row := range rows {
		prefixID, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("ioformat: %s: bad prefix_id %q: %w", path, row[0], err)
		}
		if prefixID < topology.MinPrefixID || prefixID > topology.MaxPrefixID {
			continue
		}
		nodeID, err := strconv.Atoi(row[1])
		if err != nil {
			return fmt.Errorf("ioformat: %s: bad node_id %q: %w", path, row[1], err)
		}
		cost, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("ioformat: %s: bad cost %q: %w", path, row[2], err)
		}
		n, err := t.NodeOrErr(nodeID)
		if err != nil {
			return fmt.Errorf("ioformat: %s: %w", path, err)
		}
		n.PrefixCost[prefixID] = cost
	}
	return nil
}

// readCSVRows reads every comma-separated row of path with a variable field
// count (topology rows may carry 3 or 4 columns).
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ioformat: %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
