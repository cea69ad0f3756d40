package main

import (
	"fmt"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/tictactoe-cli/internal"
	"github.com/rocketscienceinc/tictactoe-cli/internal/config"
)

const configPath = "config.yml"

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "tictactoe: %v\n", r)
			os.Exit(1)
		}
	}()

	conf := config.MustLoad(configPath)

	if err := app.RunApp(newLogger(conf.LogLevel), conf); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes JSON to stderr; stdout belongs to the board.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
