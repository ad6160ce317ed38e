package main

import (
	"bwtnet/internal/client"
	"bwtnet/internal/ctxlog"
	"bwtnet/internal/fasta"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRequestCmd() *cobra.Command {
	var (
		host      string
		port      int
		sequence  string
		transform string
		fastaPath string
	)

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Send a sequence or transform to a bwtserver",
		Long: `Send a request to a running bwtserver.

--sequence and --fasta call the transform endpoint, --bwt calls the inverse
endpoint. Exactly one of them is required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := client.NewHostPort(host, port)

			var (
				out string
				err error
			)
			switch {
			case fastaPath != "":
				seq, ferr := fasta.ReadFile(fastaPath)
				if ferr != nil {
					return ferr
				}
				out, err = c.Transform(ctx, seq)
			case cmd.Flags().Changed("sequence"):
				out, err = c.Transform(ctx, sequence)
			case cmd.Flags().Changed("bwt"):
				out, err = c.Inverse(ctx, transform)
			default:
				return errors.New("you must provide one of --fasta, --sequence or --bwt")
			}
			if err != nil {
				ctxlog.Get(ctx).Debug("request failed", "host", host, "port", port, "error", err)
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host (required)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port (required)")
	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "DNA sequence to transform")
	cmd.Flags().StringVarP(&transform, "bwt", "b", "", "Transform to invert")
	cmd.Flags().StringVarP(&fastaPath, "fasta", "f", "", "FASTA file holding the sequence to transform")

	cmd.MarkFlagRequired("host")
	cmd.MarkFlagRequired("port")
	cmd.MarkFlagsMutuallyExclusive("sequence", "bwt", "fasta")

	return cmd
}
