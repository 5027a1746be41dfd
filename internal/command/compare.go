package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/jonwraymond/utilkit/compare"
	"github.com/jonwraymond/utilkit/yamlext"
)

// ErrPathNotFound is returned when --path selects nothing in a document.
var ErrPathNotFound = errors.New("path not found")

// CompareCommandAction loads two JSON or YAML documents and compares them
// structurally, numbers within --tolerance.
func (s *session) CompareCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2, "A B"); err != nil {
		return err
	}
	return s.run(ctx, "compare", func(ctx context.Context) error {
		sel := cmd.String("path")
		a, err := loadDocument(cmd.Args().Get(0), sel)
		if err != nil {
			return err
		}
		b, err := loadDocument(cmd.Args().Get(1), sel)
		if err != nil {
			return err
		}

		var opts []compare.AssertOption
		if !cmd.Bool("objects") {
			opts = append(opts, compare.WithoutObjects())
		}
		c := compare.New(compare.WithTolerance(cmd.Float("tolerance")))
		if err := c.AssertCompare(a, b, opts...); err != nil {
			log.Debugf("compare: %v", err)
			if !cmd.Bool("quiet") {
				fmt.Fprintln(s.stdout, err)
			}
			return ErrMismatch
		}
		if !cmd.Bool("quiet") {
			fmt.Fprintln(s.stdout, "documents match")
		}
		return nil
	})
}

// loadDocument decodes a .json file as JSON and anything else as YAML.
// A non-empty sel narrows the document with a gjson path.
func loadDocument(path, sel string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	isJSON := strings.EqualFold(filepath.Ext(path), ".json")
	if sel != "" {
		if !isJSON {
			doc, err := yamlext.Loads(string(data))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			if data, err = json.Marshal(doc); err != nil {
				return nil, fmt.Errorf("%s: --path needs string keys: %w", path, err)
			}
		}
		res := gjson.GetBytes(data, sel)
		if !res.Exists() {
			return nil, fmt.Errorf("%w: %q in %s", ErrPathNotFound, sel, path)
		}
		return res.Value(), nil
	}

	if isJSON {
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc, nil
	}
	doc, err := yamlext.Loads(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func CompareCommandBuilder(s *session) *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "structurally compare two JSON or YAML documents",
		UsageText: "utilkit compare [options] A B",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "tolerance",
				Usage: "absolute tolerance for numbers",
				Value: compare.Tolerance,
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "gjson path selecting the part of each document to compare",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "report only through the exit status",
			},
			&cli.BoolFlag{
				Name:  "objects",
				Usage: "print both values on mismatch",
			},
		},
		Action: s.CompareCommandAction,
	}
}
