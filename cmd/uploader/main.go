// cmd/uploader/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/CotynB/WizWatch/internal/asset"
	"github.com/CotynB/WizWatch/internal/config"
	"github.com/CotynB/WizWatch/internal/logging"
	"github.com/CotynB/WizWatch/internal/uploader"
)

const usage = "usage: uploader [flags] <serial-port>"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("uploader", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "config file (.yaml, .yml or .toml)")
	envFile := fs.String("env-file", ".env", "optional KEY=VALUE file loaded before env overrides")
	assetsDir := fs.String("assets", "", "directory holding generated ui_image_*.c sources")
	baud := fs.Int("baud", 0, "serial baud rate")
	logLevel := fs.String("log-level", "", "trace|debug|info|warn|error|off")
	dryRun := fs.Bool("dry-run", false, "compile and report sizes without opening the port")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 1
	}

	// --------------------
	// Load + validate config
	// --------------------

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(stderr, "env file load failed: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := config.ApplyEnv(cfg, os.Getenv); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	u := &cfg.Uploader
	if fs.NArg() == 1 {
		u.Port = fs.Arg(0)
	}
	if *assetsDir != "" {
		u.AssetsDir = *assetsDir
	}
	if *baud != 0 {
		u.BaudRate = *baud
	}
	if *logLevel != "" {
		u.Log.Level = *logLevel
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "config validation failed: %v\n", err)
		return 1
	}
	config.Normalize(cfg)

	log := logging.New(logging.Options{Level: u.Log.Level, NoColor: u.Log.NoColor, Out: stderr})

	if !*dryRun {
		if err := config.RequirePort(cfg); err != nil {
			fmt.Fprintln(stderr, usage)
			log.Error().Err(err).Msg("no serial port")
			return 1
		}
	}

	// --------------------
	// Discover + parse assets
	// --------------------

	srcs, err := asset.Discover(u.AssetsDir, u.SourcePrefix)
	if err != nil {
		log.Error().Err(err).Msg("asset discovery failed")
		return 1
	}

	assets, err := asset.LoadAll(srcs)
	if err != nil {
		log.Error().Err(err).Msg("asset parse failed")
		return 1
	}

	log.Info().Int("count", len(assets)).Str("dir", u.AssetsDir).Msg("assets found")

	if *dryRun {
		blobs, err := uploader.Compile(assets)
		if err != nil {
			log.Error().Err(err).Msg("compile failed")
			return exitCode(err)
		}
		for _, b := range blobs {
			log.Info().Str("file", b.Name).Int("bytes", len(b.Data)).Msg("compiled")
		}
		return 0
	}

	// --------------------
	// Upload
	// --------------------

	up, err := uploader.Build(*u, log)
	if err != nil {
		log.Error().Err(err).Msg("uploader build failed")
		return 1
	}

	rep, err := up.Run(assets)
	if err != nil {
		log.Error().
			Err(err).
			Str("file", rep.Failed).
			Int("uploaded", len(rep.Files)).
			Msg("upload aborted")
		return exitCode(err)
	}

	log.Info().
		Int("files", len(rep.Files)).
		Int("bytes", rep.BytesSent).
		Msg("all files uploaded; re-flash the application firmware")
	return 0
}

// exitCode extracts a process exit code from an error without assuming concrete types.
// Errors that do not expose a code map to 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	type coder interface{ Code() int }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return 1
}
