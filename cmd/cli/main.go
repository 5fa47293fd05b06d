package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/universeproject/client-go/internal/api"
	"github.com/universeproject/client-go/internal/buildinfo"
	"github.com/universeproject/client-go/internal/cli"
	"github.com/universeproject/client-go/internal/config"
	"github.com/universeproject/client-go/internal/logging"
	"github.com/universeproject/client-go/internal/onboarding"
	"github.com/universeproject/client-go/internal/session"
	"github.com/universeproject/client-go/internal/users"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	// One session store, shared by the HTTP layer (bearer source) and the
	// domain layer (login sink).
	store := session.New(logger)
	apiClient := api.NewClient(cfg.ServiceURL, cfg.RequestTimeout, store, logger)
	usersClient := users.NewClient(apiClient, store, logger)
	machine := onboarding.NewMachine(usersClient, logger)

	app := cli.NewApp(cfg, machine, usersClient, store, logger)
	app.Run(ctx)
}
