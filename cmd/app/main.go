package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/halvard/folio/internal"
	"github.com/halvard/folio/internal/auth"
	"github.com/halvard/folio/internal/blob"
	"github.com/halvard/folio/internal/content"
	"github.com/halvard/folio/internal/mcpserver"
	"github.com/halvard/folio/internal/store"
	pkgconfig "github.com/halvard/folio/pkg/config"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

// runMCP serves the portfolio tools over stdio for MCP clients. Logs go to
// stderr so stdout stays a clean protocol stream.
func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	db, err := store.Open(cfg.Storage.SQLitePath)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	blobs, err := blob.New(cfg.Storage.BlobDir, db, []byte(cfg.Storage.SignKey))
	if err != nil {
		return fmt.Errorf("init blob store: %w", err)
	}

	svc := content.NewService(db, blobs, logger, nil)
	return mcpserver.New(svc).ServeStdio()
}

// runHashkey prints the bcrypt hash of a passkey for the auth config.
func runHashkey(_ context.Context, cmd *cli.Command) error {
	passkey := cmd.Args().First()
	if passkey == "" {
		return fmt.Errorf("usage: folio hashkey <passkey>")
	}
	hash, err := auth.HashPasskey(passkey)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "folio",
		Usage:  "Portfolio content service with blob storage, admin API, and live update events",
		Action: runServe,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve portfolio tools over stdio for MCP clients",
				Action: runMCP,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:      "hashkey",
				Usage:     "Print the bcrypt hash of an admin passkey",
				ArgsUsage: "<passkey>",
				Action:    runHashkey,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
