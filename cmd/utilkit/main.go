package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jonwraymond/utilkit/internal/command"
	mylog "github.com/jonwraymond/utilkit/internal/log"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	}

	app := command.InitApp(os.Stdout, os.Stderr)
	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, command.ErrMismatch) {
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return 0
}
