// Command oilwatch-report prints the trend views in the terminal
package main

import (
	"context"
	"os"

	"oilwatch/internal/platform/config"
	"oilwatch/internal/platform/logger"
)

func main() {
	config.LoadDotEnv()

	// stdout carries the report, logs go to stderr
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	logger.Init(opt)
	l := logger.Get()

	app := newApp(openViews, os.Stdout)
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		l.Error().Err(err).Msg("report failed")
		os.Exit(1)
	}
}
