package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/jonwraymond/utilkit/ziputil"
)

// ZipdiffCommandAction compares the names and CRCs of two archives.
func (s *session) ZipdiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2, "A.zip B.zip"); err != nil {
		return err
	}
	return s.run(ctx, "zipdiff", func(context.Context) error {
		err := ziputil.CompareZipFiles(cmd.Args().Get(0), cmd.Args().Get(1))
		if errors.Is(err, ziputil.ErrFileComparison) {
			fmt.Fprintln(s.stdout, err)
			return ErrMismatch
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.stdout, "archives match")
		return nil
	})
}

// ZipCommandAction archives a directory.
func (s *session) ZipCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2, "DIR OUT.zip"); err != nil {
		return err
	}
	return s.run(ctx, "zip", func(context.Context) error {
		dir, out := cmd.Args().Get(0), cmd.Args().Get(1)

		var opts []ziputil.Option
		if sub := cmd.String("subdir"); sub != "" {
			opts = append(opts, ziputil.WithSubdir(sub))
		}
		if pattern := cmd.String("exclude"); pattern != "" {
			if _, err := filepath.Match(pattern, ""); err != nil {
				return fmt.Errorf("%w: --exclude: %w", ErrUsage, err)
			}
			opts = append(opts, ziputil.WithExclude(func(p string) bool {
				ok, _ := filepath.Match(pattern, filepath.Base(p))
				return ok
			}))
		}

		if err := ziputil.ZipDir(dir, out, opts...); err != nil {
			return err
		}
		fi, err := os.Stat(out)
		if err != nil {
			return err
		}
		log.WithField("dir", dir).Debug("archive written")
		fmt.Fprintf(s.stdout, "wrote %s (%s)\n", out, humanize.Bytes(uint64(fi.Size())))
		return nil
	})
}

func ZipdiffCommandBuilder(s *session) *cli.Command {
	return &cli.Command{
		Name:      "zipdiff",
		Usage:     "compare the file names and CRCs of two zip archives",
		UsageText: "utilkit zipdiff A.zip B.zip",
		Action:    s.ZipdiffCommandAction,
	}
}

func ZipCommandBuilder(s *session) *cli.Command {
	return &cli.Command{
		Name:      "zip",
		Usage:     "archive a directory",
		UsageText: "utilkit zip [options] DIR OUT.zip",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "subdir",
				Usage: "prefix for every name in the archive",
			},
			&cli.StringFlag{
				Name:  "exclude",
				Usage: "skip files whose base name matches this glob",
			},
		},
		Action: s.ZipCommandAction,
	}
}
