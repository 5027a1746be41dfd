package command

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/utilkit/cache"
	"github.com/jonwraymond/utilkit/observe"
	"github.com/jonwraymond/utilkit/osutils"
)

type fileSum struct {
	CRC  uint32
	Size int64
}

func sumFile(_ context.Context, path string) (fileSum, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return fileSum{}, err
	}
	crc, err := osutils.CRCFromFilename(path)
	if err != nil {
		return fileSum{}, err
	}
	return fileSum{CRC: crc, Size: fi.Size()}, nil
}

// CrcCommandAction prints the CRC-32 and size of each file. Repeated paths
// are served from a memo whose statistics are exported as cache metrics.
func (s *session) CrcCommandAction(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: crc FILE...", ErrUsage)
	}
	return s.run(ctx, "crc", func(ctx context.Context) error {
		memo := cache.MustNew(sumFile, cache.DefaultConfig())
		if s.obs != nil {
			reg, err := observe.RegisterCacheMetrics(s.obs.Meter(), "crc", memo)
			if err != nil {
				return err
			}
			defer func() { _ = reg.Unregister() }()
		}

		sums := make([]fileSum, len(paths))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, p := range paths {
			g.Go(func() error {
				sum, err := memo.Call(gctx, p)
				if err != nil {
					return err
				}
				sums[i] = sum
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, p := range paths {
			fmt.Fprintf(s.stdout, "%08x  %9s  %s\n", sums[i].CRC, humanize.Bytes(uint64(sums[i].Size)), p)
		}
		info := memo.Info()
		log.WithFields(log.Fields{"hits": info.Hits, "misses": info.Misses}).Debug("crc cache")
		return nil
	})
}

func CrcCommandBuilder(s *session) *cli.Command {
	return &cli.Command{
		Name:      "crc",
		Usage:     "print the CRC-32 and size of files",
		UsageText: "utilkit crc FILE...",
		Action:    s.CrcCommandAction,
	}
}
