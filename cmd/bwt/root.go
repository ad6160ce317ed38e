package main

import (
	"bwtnet/internal/bwt"
	"bwtnet/internal/fasta"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bwt",
		Short: "Burrows-Wheeler Transform of DNA sequences",
		Long: `bwt computes the Burrows-Wheeler Transform of a sequence and its inverse.

Sequences can be given on the command line or read from a FASTA file. The
terminator '$' is appended by transform and must appear exactly once in the
input to inverse. Use request to run the same operations on a bwtserver.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTransformCmd())
	root.AddCommand(newInverseCmd())
	root.AddCommand(newRequestCmd())
	root.AddCommand(newHistoryCmd())

	return root
}

// sequenceArg returns the single positional sequence or the contents of
// fastaPath. Exactly one must be provided.
func sequenceArg(args []string, fastaPath string) (string, error) {
	switch {
	case fastaPath != "" && len(args) > 0:
		return "", errors.New("give either a sequence or --fasta, not both")
	case fastaPath != "":
		return fasta.ReadFile(fastaPath)
	case len(args) == 1:
		return args[0], nil
	}
	return "", errors.New("a sequence or --fasta is required")
}

func newTransformCmd() *cobra.Command {
	var fastaPath string

	cmd := &cobra.Command{
		Use:   "transform [sequence]",
		Short: "Print the transform of a sequence",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := sequenceArg(args, fastaPath)
			if err != nil {
				return err
			}

			out, err := bwt.Transform(seq)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fastaPath, "fasta", "f", "", "Read the sequence from a FASTA file")

	return cmd
}

func newInverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inverse <bwt>",
		Short: "Print the sequence a transform was computed from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := bwt.Inverse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
