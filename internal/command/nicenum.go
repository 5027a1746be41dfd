package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/jonwraymond/utilkit/nicenum"
)

// NicenumCommandAction pretty-prints numbers, or byte counts with --memory.
func (s *session) NicenumCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("%w: nicenum NUMBER...", ErrUsage)
	}
	return s.run(ctx, "nicenum", func(context.Context) error {
		for _, arg := range args {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			if cmd.Bool("memory") {
				fmt.Fprintln(s.stdout, nicenum.FormatMemory(v))
			} else {
				fmt.Fprintln(s.stdout, nicenum.Format(v, cmd.Float("precision")))
			}
		}
		return nil
	})
}

func NicenumCommandBuilder(s *session) *cli.Command {
	return &cli.Command{
		Name:      "nicenum",
		Usage:     "format numbers with digit grouping",
		UsageText: "utilkit nicenum [options] NUMBER...",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "precision",
				Usage: "round to a multiple of this value",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "memory",
				Usage: "format as a byte count (B, KB, MB, GB)",
			},
		},
		Action: s.NicenumCommandAction,
	}
}
