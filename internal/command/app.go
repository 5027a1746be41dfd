package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	mylog "github.com/jonwraymond/utilkit/internal/log"
	"github.com/jonwraymond/utilkit/internal/version"
	"github.com/jonwraymond/utilkit/observe"
)

var (
	// ErrMismatch is returned by the comparison commands when their inputs
	// differ. main maps it to exit status 1.
	ErrMismatch = errors.New("inputs differ")

	// ErrUsage is returned for missing or malformed arguments.
	ErrUsage = errors.New("usage")
)

// session carries what the root Before hook sets up for the subcommands.
type session struct {
	stdout io.Writer
	stderr io.Writer
	obs    observe.Observer
	mw     *observe.Middleware
}

// InitApp builds the root command. Command output goes to stdout and
// telemetry exporters write to stderr.
func InitApp(stdout, stderr io.Writer) *cli.Command {
	s := &session{stdout: stdout, stderr: stderr}

	app := &cli.Command{
		Name:      "utilkit",
		Usage:     "compare documents, diff archives and checksum files",
		Version:   version.Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     GlobalFlags(),
		Before:    s.before,
		After:     s.after,
	}

	app.Commands = append(app.Commands,
		CompareCommandBuilder(s),
		CrcCommandBuilder(s),
		NicenumCommandBuilder(s),
		ZipCommandBuilder(s),
		ZipdiffCommandBuilder(s),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}

// GlobalFlags are accepted before or after any subcommand.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar(mylog.EnvLevel),
			),
		},
		&cli.StringFlag{
			Name:  "trace",
			Usage: "trace exporter: stdout, otlp, jaeger or none",
		},
		&cli.StringFlag{
			Name:  "metrics",
			Usage: "metrics exporter: stdout, otlp, prometheus or none",
		},
	}
}

func (s *session) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if level := cmd.String("log-level"); level != "" {
		if err := mylog.SetLevel(level); err != nil {
			return ctx, fmt.Errorf("%w: --log-level: %w", ErrUsage, err)
		}
	}

	cfg := observe.Config{
		ServiceName: "utilkit",
		Version:     version.Version,
		Output:      s.stderr,
	}
	if exp := cmd.String("trace"); exp != "" {
		cfg.Tracing = observe.TracingConfig{Enabled: true, Exporter: exp, SamplePct: 1}
	}
	if exp := cmd.String("metrics"); exp != "" {
		cfg.Metrics = observe.MetricsConfig{Enabled: true, Exporter: exp}
	}

	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		return ctx, err
	}
	metrics, err := observe.NewMetrics(obs.Meter())
	if err != nil {
		return ctx, err
	}
	s.obs = obs
	s.mw = observe.NewMiddleware(observe.NewTracer(obs.Tracer()), metrics, mylog.Observe(log.Log))
	log.Debugf("telemetry: trace=%q metrics=%q", cfg.Tracing.Exporter, cfg.Metrics.Exporter)
	return ctx, nil
}

func (s *session) after(ctx context.Context, _ *cli.Command) error {
	if s.obs == nil {
		return nil
	}
	return s.obs.Shutdown(ctx)
}

// run executes fn as the instrumented operation cli.<name>.
func (s *session) run(ctx context.Context, name string, fn observe.Func) error {
	meta := observe.OpMeta{Component: "cli", Name: name, Version: version.Version}
	if s.mw == nil {
		return fn(ctx)
	}
	return s.mw.Run(ctx, meta, fn)
}

func requireArgs(cmd *cli.Command, n int, names string) error {
	if cmd.NArg() != n {
		return fmt.Errorf("%w: %s %s", ErrUsage, cmd.Name, names)
	}
	return nil
}
