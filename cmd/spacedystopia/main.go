// Space Dystopia is a menu-driven sci-fi adventure game set on Space
// Station Europa.
// Usage: spacedystopia [--version] [--plain] [--script <file>] [--seed <n>] [--name <name>] [--trace]
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ayush-Kadali/Space-Dystopia/cli"
	"github.com/Ayush-Kadali/Space-Dystopia/engine"
	"github.com/Ayush-Kadali/Space-Dystopia/gamedata"
	"github.com/Ayush-Kadali/Space-Dystopia/telemetry"
	"github.com/Ayush-Kadali/Space-Dystopia/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	traceFlag := false
	var scriptFile string
	var playerName string
	var seedArg string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("spacedystopia %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			traceFlag = true
		case "--script":
			i++
			scriptFile = flagValue(args, i, "--script")
		case "--seed":
			i++
			seedArg = flagValue(args, i, "--seed")
		case "--name":
			i++
			playerName = flagValue(args, i, "--name")
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", args[i])
			usage()
			os.Exit(1)
		}
	}

	// Optional .env for local configuration. Missing file is fine.
	_ = godotenv.Load()

	cfg := configFromEnv()
	if seedArg != "" {
		seed, err := strconv.ParseInt(seedArg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid seed: %s\n", seedArg)
			os.Exit(1)
		}
		cfg.Seed = seed
	}

	defs, err := gamedata.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game data: %v\n", err)
		os.Exit(1)
	}

	if playerName == "" {
		playerName = promptName()
	}

	eng, err := engine.New(defs, playerName, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if !telemetry.Enabled() {
		eng.SetTracer(ctx, telemetry.NoopTracer())
	} else {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Telemetry setup failed: %v\n", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(shutdownCtx)
			}()
			eng.SetTracer(ctx, telemetry.Tracer("spacedystopia"))
		}
	}

	// Script mode: read menu choices from file, force plain, echo input.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = traceFlag
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(eng)
		c.Trace = traceFlag
		c.TypewriterDelay = typewriterDelay()
		c.Run()
		return
	}

	if err := tui.Run(eng, defs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFromEnv builds the engine configuration from environment variables,
// starting from the defaults.
func configFromEnv() engine.Config {
	cfg := engine.DefaultConfig()

	if v := os.Getenv("SPACE_DYSTOPIA_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}
	if v := os.Getenv("SPACE_DYSTOPIA_LOSS_EXIT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ExitOnPlayerDeath = b
		}
	}
	if v := os.Getenv("SPACE_DYSTOPIA_MONOTONE_OBJECTIVES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MonotoneObjectives = b
		}
	}

	return cfg
}

// typewriterDelay reads the per-rune output delay for interactive plain
// mode. Defaults to 25ms; 0 disables the effect.
func typewriterDelay() time.Duration {
	if v := os.Getenv("SPACE_DYSTOPIA_TYPEWRITER_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 25 * time.Millisecond
}

func promptName() string {
	fmt.Print("Enter your name: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		fmt.Fprintln(os.Stderr, "No name given.")
		os.Exit(1)
	}
	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		fmt.Fprintln(os.Stderr, "No name given.")
		os.Exit(1)
	}
	return name
}

func flagValue(args []string, i int, flag string) string {
	if i >= len(args) {
		fmt.Fprintf(os.Stderr, "%s requires a value\n", flag)
		os.Exit(1)
	}
	return args[i]
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spacedystopia [--version] [--plain] [--script <file>] [--seed <n>] [--name <name>] [--trace]\n")
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
