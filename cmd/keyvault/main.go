package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lightningnetwork/lnd/clock"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keyvault/internal/config"
	"github.com/tdex-network/keyvault/internal/core/application"
	"github.com/tdex-network/keyvault/internal/core/ports"
	"github.com/tdex-network/keyvault/internal/infrastructure/storage"
	"github.com/urfave/cli/v2"
)

// services are the application services used by the commands that need
// the store. They are built before running one of those and released after.
type services struct {
	repoManager ports.RepoManager
	profiles    application.ProfileService
	accounts    application.AccountService
	settings    application.SettingsService
}

var svc *services

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "keyvault"
	app.Usage = "Command line interface to manage the encrypted keys of wallet profiles"
	app.Commands = append(
		app.Commands,
		&genseed,
		&profile,
		&account,
		&settings,
		&path,
	)
	app.Before = initConfig

	return app
}

func initConfig(_ *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	return nil
}

func initServices(_ *cli.Context) error {
	store, err := storage.OpenStore(
		config.GetString(config.DBTypeKey), config.GetDatadir(),
	)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	clk := clock.NewDefaultClock()
	repoManager, err := storage.NewRepoManager(store, clk)
	if err != nil {
		store.Close()
		return err
	}

	svc = &services{
		repoManager: repoManager,
		profiles:    application.NewProfileService(repoManager, clk),
		accounts:    application.NewAccountService(repoManager, clk),
		settings:    application.NewSettingsService(repoManager),
	}
	return nil
}

func closeServices(_ *cli.Context) error {
	if svc != nil {
		svc.repoManager.Close()
		svc = nil
	}
	return nil
}

func printJSON(ctx *cli.Context, resp interface{}) error {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %w", err)
	}
	fmt.Fprintln(ctx.App.Writer, string(buf))
	return nil
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[keyvault] %v\n", err)
	os.Exit(1)
}
