// Command wovend is a thin demo binary exposing the wovenwire library as
// an HTTP server that upgrades any request to "/echo" into a WebSocket
// loopback session, and answers everything else with a small status
// response. It exists to exercise pkg/httpwire and pkg/websocket
// end-to-end over a real listening socket, not as a production server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"

	"github.com/wovenwire/wovenwire/internal/config"
	"github.com/wovenwire/wovenwire/internal/logger"
)

const (
	DefaultPort            = 8080
	DefaultMaxHeaderBytes  = 8 * 1024
	DefaultIdleTimeoutSecs = 60
)

func main() {
	bi, _ := debug.ReadBuildInfo()

	cmd := &cli.Command{
		Name:    "wovend",
		Usage:   "demo HTTP + WebSocket server built on wovenwire",
		Version: bi.Main.Version,
		Flags:   flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			initLog(cmd.Bool("pretty-log"))
			ctx = logger.InContext(ctx, slog.Default())

			s := newServer(cmd)
			return s.Run(ctx)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	path := configFile()

	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "pretty-log",
			Usage: "human-readable console logging, instead of JSON",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "TCP port to listen on",
			Value: DefaultPort,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WOVEND_PORT"),
				toml.TOML("server.port", path),
			),
		},
		&cli.IntFlag{
			Name:  "max-header-bytes",
			Usage: "cap on a single header line and the cumulative header block",
			Value: DefaultMaxHeaderBytes,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WOVEND_MAX_HEADER_BYTES"),
				toml.TOML("server.max_header_bytes", path),
			),
		},
		&cli.IntFlag{
			Name:  "idle-timeout-seconds",
			Usage: "read timeout for receiving a new connection's HTTP request (lifted once a WebSocket session opens)",
			Value: DefaultIdleTimeoutSecs,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WOVEND_IDLE_TIMEOUT_SECONDS"),
				toml.TOML("server.idle_timeout_seconds", path),
			),
		},
		&cli.BoolFlag{
			Name:  "deflate",
			Usage: "agree to permessage-deflate when a client offers it",
			Value: true,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("WOVEND_DEFLATE"),
				toml.TOML("server.deflate", path),
			),
		},
	}
}

// configFile returns the path to wovend's configuration file, creating an
// empty file if one doesn't already exist.
func configFile() altsrc.StringSourcer {
	path, err := config.FilePath()
	if err != nil {
		logger.FatalError("failed to resolve config file", err)
	}
	return altsrc.StringSourcer(path)
}

// initLog initializes the default [slog.Logger], matching the teacher's
// dev-vs-production console/JSON split.
func initLog(pretty bool) {
	var handler slog.Handler
	if pretty {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})
	}
	slog.SetDefault(slog.New(handler))
}
