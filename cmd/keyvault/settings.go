package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/urfave/cli/v2"
)

const (
	networkIDFlagName     = "network_id"
	nodeURLFlagName       = "node_url"
	explorerURLFlagName   = "explorer_url"
	feeMultiplierFlagName = "fee_multiplier"
	accountFlagName       = "account"
)

var networkIDFlag = &cli.StringFlag{
	Name:     networkIDFlagName,
	Usage:    "the id of the network, usually its generation hash",
	Required: true,
}

type settingsInfo struct {
	NetworkID        string `json:"networkId"`
	NodeURL          string `json:"nodeUrl"`
	ExplorerURL      string `json:"explorerUrl,omitempty"`
	FeeMultiplier    string `json:"feeMultiplier"`
	DefaultAccountID string `json:"defaultAccountId,omitempty"`
}

func newSettingsInfo(networkID string, s domain.NetworkSettings) settingsInfo {
	return settingsInfo{
		NetworkID:        networkID,
		NodeURL:          s.NodeURL,
		ExplorerURL:      s.ExplorerURL,
		FeeMultiplier:    s.FeeMultiplier.String(),
		DefaultAccountID: s.DefaultAccountID,
	}
}

var settings = cli.Command{
	Name:   "settings",
	Usage:  "manage the per-network settings",
	Before: initServices,
	After:  closeServices,
	Subcommands: []*cli.Command{
		{
			Name:  "set",
			Usage: "update the settings of a network, making it the latest one",
			Flags: []cli.Flag{
				networkIDFlag,
				&cli.StringFlag{
					Name:  nodeURLFlagName,
					Usage: "the url of the node to connect to",
				},
				&cli.StringFlag{
					Name:  explorerURLFlagName,
					Usage: "the url of the block explorer",
				},
				&cli.StringFlag{
					Name:  feeMultiplierFlagName,
					Usage: "the multiplier applied to transaction fees",
				},
			},
			Action: setSettingsAction,
		},
		{
			Name:   "get",
			Usage:  "get the settings of a network",
			Flags:  []cli.Flag{networkIDFlag},
			Action: getSettingsAction,
		},
		{
			Name:   "latest",
			Usage:  "get the settings of the most recently updated network",
			Action: latestSettingsAction,
		},
		{
			Name:   "remove",
			Usage:  "remove the settings of a network",
			Flags:  []cli.Flag{networkIDFlag},
			Action: removeSettingsAction,
		},
		{
			Name:   "list",
			Usage:  "list the networks with settings",
			Action: listNetworksAction,
		},
		{
			Name:  "default",
			Usage: "select the default account of a network",
			Flags: []cli.Flag{
				networkIDFlag,
				&cli.StringFlag{
					Name:     accountFlagName,
					Usage:    "the id of the account",
					Required: true,
				},
			},
			Action: setNetworkDefaultAccountAction,
		},
	},
}

// setSettingsAction only overwrites the settings given via flags.
func setSettingsAction(ctx *cli.Context) error {
	networkID := ctx.String(networkIDFlagName)

	current, err := svc.settings.Get(ctx.Context, networkID)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingsNotFound) {
			return err
		}
		current = &domain.NetworkSettings{FeeMultiplier: decimal.NewFromInt(1)}
	}

	if ctx.IsSet(nodeURLFlagName) {
		current.NodeURL = ctx.String(nodeURLFlagName)
	}
	if ctx.IsSet(explorerURLFlagName) {
		current.ExplorerURL = ctx.String(explorerURLFlagName)
	}
	if ctx.IsSet(feeMultiplierFlagName) {
		multiplier, err := decimal.NewFromString(ctx.String(feeMultiplierFlagName))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", feeMultiplierFlagName, err)
		}
		current.FeeMultiplier = multiplier
	}

	if err := svc.settings.Set(ctx.Context, networkID, *current); err != nil {
		return err
	}
	return printJSON(ctx, newSettingsInfo(networkID, *current))
}

func getSettingsAction(ctx *cli.Context) error {
	networkID := ctx.String(networkIDFlagName)
	s, err := svc.settings.Get(ctx.Context, networkID)
	if err != nil {
		return err
	}
	return printJSON(ctx, newSettingsInfo(networkID, *s))
}

func latestSettingsAction(ctx *cli.Context) error {
	networkID, s, err := svc.settings.Latest(ctx.Context)
	if err != nil {
		return err
	}
	return printJSON(ctx, newSettingsInfo(networkID, *s))
}

func removeSettingsAction(ctx *cli.Context) error {
	if err := svc.settings.Remove(
		ctx.Context, ctx.String(networkIDFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "Done")
	return nil
}

func listNetworksAction(ctx *cli.Context) error {
	networks, err := svc.settings.Networks(ctx.Context)
	if err != nil {
		return err
	}
	return printJSON(ctx, networks)
}

func setNetworkDefaultAccountAction(ctx *cli.Context) error {
	if err := svc.settings.SetDefaultAccount(
		ctx.Context, ctx.String(networkIDFlagName), ctx.String(accountFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "Done")
	return nil
}
