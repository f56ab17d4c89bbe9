package main

import (
	"fmt"
	"strings"

	"github.com/tdex-network/keyvault/internal/config"
	"github.com/tdex-network/keyvault/pkg/wallet"
	"github.com/urfave/cli/v2"
)

const (
	pathFlagName  = "path"
	levelFlagName = "level"
	deltaFlagName = "delta"
)

var levelsByName = map[string]wallet.Level{
	"purpose":  wallet.LevelPurpose,
	"coin":     wallet.LevelCoinType,
	"account":  wallet.LevelAccount,
	"change":   wallet.LevelChange,
	"address":  wallet.LevelAddress,
	"cointype": wallet.LevelCoinType,
}

var path = cli.Command{
	Name:  "path",
	Usage: "compute derivation paths without touching any profile",
	Subcommands: []*cli.Command{
		{
			Name:  "next",
			Usage: "get the first account path not used by the given ones",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:  pathFlagName,
					Usage: "a path already in use, can be repeated",
				},
			},
			Action: nextPathAction,
		},
		{
			Name:  "seed",
			Usage: "get the account path at the given seed index",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     indexFlagName,
					Usage:    "the seed index, from 0 to 9",
					Required: true,
				},
			},
			Action: seedPathAction,
		},
		{
			Name:  "remote",
			Usage: "get the remote key path of an account path",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     pathFlagName,
					Usage:    "the account path",
					Required: true,
				},
				&cli.StringFlag{
					Name:     indexFlagName,
					Usage:    "the remote index, from 1 to 10",
					Required: true,
				},
			},
			Action: remotePathAction,
		},
		{
			Name:  "shift",
			Usage: "move one level of a path by delta, negative values decrement it",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     pathFlagName,
					Usage:    "the path to shift",
					Required: true,
				},
				&cli.StringFlag{
					Name:  levelFlagName,
					Usage: "one of purpose, coin, account, change or address",
					Value: "account",
				},
				&cli.IntFlag{
					Name:  deltaFlagName,
					Usage: "the amount to add to the level",
					Value: 1,
				},
			},
			Action: shiftPathAction,
		},
	},
}

func nextPathAction(ctx *cli.Context) error {
	deriver := wallet.NewDeriver(config.GetCoinType())
	next, err := deriver.NextAccountPath(ctx.StringSlice(pathFlagName))
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, next.String())
	return nil
}

func seedPathAction(ctx *cli.Context) error {
	index, err := wallet.ParseSeedIndex(ctx.String(indexFlagName))
	if err != nil {
		return err
	}

	deriver := wallet.NewDeriver(config.GetCoinType())
	p, err := deriver.PathForSeedIndex(index)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, p.String())
	return nil
}

func remotePathAction(ctx *cli.Context) error {
	index, err := wallet.ParseRemoteIndex(ctx.String(indexFlagName))
	if err != nil {
		return err
	}

	p, err := wallet.RemoteAccountPath(ctx.String(pathFlagName), index)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, p.String())
	return nil
}

func shiftPathAction(ctx *cli.Context) error {
	level, ok := levelsByName[strings.ToLower(ctx.String(levelFlagName))]
	if !ok {
		return wallet.ErrInvalidLevel
	}

	var (
		shifted string
		err     error
	)
	if delta := ctx.Int(deltaFlagName); delta >= 0 {
		shifted, err = wallet.IncrementPathLevel(ctx.String(pathFlagName), level, delta)
	} else {
		shifted, err = wallet.DecrementPathLevel(ctx.String(pathFlagName), level, -delta)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, shifted)
	return nil
}
