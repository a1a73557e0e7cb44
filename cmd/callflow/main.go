package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
)

const usage = `usage: callflow <import|deps|graph|structure|model> [flags]`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	_ = godotenv.Load()

	command := os.Args[1]
	options := &Options{}
	flags := flag.NewFlagSet(command, flag.ExitOnError)
	flags.StringVar(&options.Source, "src", "", "source folder or URL with one file per node")
	flags.BoolVar(&options.Recursive, "r", false, "scan source sub folders")
	flags.StringVar(&options.DSN, "dsn", os.Getenv("CALLFLOW_PG_DSN"), "PostgreSQL DSN of the node store")
	flags.StringVar(&options.Project, "project", "", "project folder under -src, or raw data id with -dsn (import reads it as a folder)")
	flags.StringVar(&options.Name, "name", "", "imported project name, detected from composer.json when empty")
	flags.StringVar(&options.Node, "node", "", "node name")
	flags.StringVar(&options.Function, "function", "", "function name, all functions when empty")
	flags.StringVar(&options.Mode, "mode", "", "scanner mode: text or syntax")
	flags.StringVar(&options.ConfigURL, "config", "", "YAML config URL")
	flags.StringVar(&options.RawData, "raw", "", "raw data JSON URL for structure and model")
	flags.StringVar(&options.Format, "format", "json", "output format: json or yaml")
	flags.StringVar(&options.Export, "export", "", "graph destination URL")
	flags.StringVar(&options.Neo4jURI, "neo4j-uri", os.Getenv("NEO4J_URI"), "Neo4j bolt URI, graph is merged into Neo4j when set")
	flags.StringVar(&options.Neo4jUser, "neo4j-user", envOr("NEO4J_USER", "neo4j"), "Neo4j username")
	flags.StringVar(&options.Neo4jPassword, "neo4j-pass", os.Getenv("NEO4J_PASSWORD"), "Neo4j password")
	verbose := flags.Bool("v", false, "debug logging")
	_ = flags.Parse(os.Args[2:])

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	runner := &Runner{Options: options, Logger: logger, Output: os.Stdout}
	if err := runner.Run(ctx, strings.ToLower(command)); err != nil {
		logger.Error("callflow failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
