// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/jenkinsci/literate-api/cmd/literate/cli"
	"github.com/jenkinsci/literate-api/lib/codec"
	"github.com/jenkinsci/literate-api/lib/model"
	"github.com/jenkinsci/literate-api/lib/snapshot"
)

type inspectParams struct {
	cli.JSONOutput
	Diagnose bool `flag:"diagnose,d" desc:"print the CBOR payload in diagnostic notation"`
}

// inspectResult is the JSON form of "literate inspect".
type inspectResult struct {
	Path        string         `json:"path"`
	Version     uint8          `json:"version"`
	Compression string         `json:"compression"`
	Size        uint32         `json:"size"`
	StoredSize  int            `json:"stored_size"`
	Digest      string         `json:"digest"`
	Model       model.Snapshot `json:"model"`
}

func inspectCommand(streams streams) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Verify and describe a snapshot file",
		Description: `Read a snapshot written by "literate resolve --out", verify its digest,
and print its header and a summary of the model it holds.`,
		Usage: "literate inspect <file> [flags]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("inspect", &params) },
		Run: func(_ context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one snapshot file required\n\nUsage: literate inspect <file>")
			}
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			header, decoded, err := snapshot.DecodeSnapshot(data)
			if err != nil {
				return fmt.Errorf("inspecting %s: %w", path, err)
			}

			if done, err := params.EmitJSON(streams.stdout, inspectResult{
				Path:        path,
				Version:     header.Version,
				Compression: header.Compression.String(),
				Size:        header.Size,
				StoredSize:  len(data),
				Digest:      header.Digest.String(),
				Model:       decoded,
			}); done {
				return err
			}

			table := tabwriter.NewWriter(streams.stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintf(table, "path:\t%s\n", path)
			fmt.Fprintf(table, "version:\t%d\n", header.Version)
			fmt.Fprintf(table, "compression:\t%s\n", header.Compression)
			fmt.Fprintf(table, "size:\t%d bytes (%d stored)\n", header.Size, len(data))
			fmt.Fprintf(table, "digest:\t%s\n", header.Digest)
			fmt.Fprintf(table, "environments:\t%d\n", len(decoded.Environments))
			fmt.Fprintf(table, "build entries:\t%d\n", len(decoded.Build.Entries))
			fmt.Fprintf(table, "tasks:\t%d\n", len(decoded.Tasks))
			if err := table.Flush(); err != nil {
				return err
			}

			if !params.Diagnose {
				return nil
			}
			// The payload encoding is deterministic, so re-encoding the
			// decoded snapshot reproduces the stored bytes.
			payload, err := codec.Marshal(decoded)
			if err != nil {
				return err
			}
			notation, err := codec.Diagnose(payload)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(streams.stdout, "\n%s\n", notation)
			return err
		},
	}
}
