package main

import (
	"bwtnet/internal/config"
	"bwtnet/internal/ctxlog"
	"bwtnet/internal/db"
	"bwtnet/internal/rec"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		file string
		op   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List results stored by bwtserver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer rec.Error(&err)

			ctx := cmd.Context()

			c, err := config.Load(ctx, file)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if c.DB.File == "" {
				return errors.New("config has no db file")
			}

			c.DB.ReadOnly = true
			d, err := db.Open(c.DB)
			if err != nil {
				return err
			}
			defer ctxlog.Close(ctx, "db", d)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "OP\tHITS\tLAST USED\tINPUT\tOUTPUT")
			for _, r := range d.All() {
				if op != "" && r.Op != op {
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.Op, r.Hits, r.LastUsed.Format(time.DateTime), abbrev(r.Input), abbrev(r.Output))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "config", "c", "config.yaml", "bwtserver config file")
	cmd.Flags().StringVar(&op, "op", "", "Only show results of this operation (bwt or inverse_bwt)")

	return cmd
}

func abbrev(s string) string {
	const width = 40
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
