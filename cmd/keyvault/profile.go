package main

import (
	"fmt"
	"strings"

	"github.com/tdex-network/keyvault/internal/config"
	"github.com/tdex-network/keyvault/internal/core/application"
	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/urfave/cli/v2"
)

const (
	nameFlagName           = "name"
	networkFlagName        = "network"
	generationHashFlagName = "generation_hash"
	mnemonicFlagName       = "mnemonic"
	passwordFlagName       = "password"
	hintFlagName           = "hint"
	seedIndexFlagName      = "seed_index"
	curPwdFlagName         = "current_password"
	newPwdFlagName         = "new_password"
)

var (
	nameFlag = &cli.StringFlag{
		Name:     nameFlagName,
		Usage:    "the name of the profile",
		Required: true,
	}
	passwordFlag = &cli.StringFlag{
		Name:     passwordFlagName,
		Usage:    "the password that encrypts the profile keys",
		Required: true,
	}
	newProfileFlags = []cli.Flag{
		nameFlag,
		passwordFlag,
		&cli.StringFlag{
			Name:  networkFlagName,
			Usage: "the network type of the profile, either mainnet or testnet. Defaults to the configured one",
		},
		&cli.StringFlag{
			Name:     generationHashFlagName,
			Usage:    "the generation hash of the network",
			Required: true,
		},
		&cli.StringFlag{
			Name:  hintFlagName,
			Usage: "an optional hint to remember the password",
		},
	}
)

type profileInfo struct {
	Name             string `json:"name"`
	NetworkType      string `json:"networkType"`
	GenerationHash   string `json:"generationHash"`
	PasswordHint     string `json:"passwordHint,omitempty"`
	DefaultAccountID string `json:"defaultAccountId,omitempty"`
	CreatedAt        int64  `json:"createdAt"`
}

func newProfileInfo(p domain.Profile) profileInfo {
	return profileInfo{
		Name:             p.Name,
		NetworkType:      string(p.NetworkType),
		GenerationHash:   p.GenerationHash,
		PasswordHint:     p.PasswordHint,
		DefaultAccountID: p.DefaultAccountID,
		CreatedAt:        p.CreatedAt,
	}
}

var profile = cli.Command{
	Name:   "profile",
	Usage:  "manage the wallet profiles",
	Before: initServices,
	After:  closeServices,
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "create a new profile. A new mnemonic is generated if none is given",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  mnemonicFlagName,
					Usage: "the space separated mnemonic of the profile",
				},
			}, newProfileFlags...),
			Action: createProfileAction,
		},
		{
			Name:  "restore",
			Usage: "restore a profile from its mnemonic",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     mnemonicFlagName,
					Usage:    "the space separated mnemonic of the profile",
					Required: true,
				},
				&cli.IntSliceFlag{
					Name:  seedIndexFlagName,
					Usage: "the seed indexes of the accounts to restore, the first one becomes the default account",
				},
			}, newProfileFlags...),
			Action: restoreProfileAction,
		},
		{
			Name:   "list",
			Usage:  "list all profiles",
			Action: listProfilesAction,
		},
		{
			Name:  "changepassword",
			Usage: "change the password of a profile, re-encrypting all its keys",
			Flags: []cli.Flag{
				nameFlag,
				&cli.StringFlag{
					Name:     curPwdFlagName,
					Usage:    "the old password to be changed",
					Required: true,
				},
				&cli.StringFlag{
					Name:     newPwdFlagName,
					Usage:    "the new password that replaces the old one",
					Required: true,
				},
			},
			Action: changePasswordAction,
		},
		{
			Name:   "reveal",
			Usage:  "reveal the mnemonic of a profile",
			Flags:  []cli.Flag{nameFlag, passwordFlag},
			Action: revealMnemonicAction,
		},
		{
			Name:   "remove",
			Usage:  "remove a profile together with all its accounts",
			Flags:  []cli.Flag{nameFlag, passwordFlag},
			Action: removeProfileAction,
		},
	},
}

func createProfileAction(ctx *cli.Context) error {
	var mnemonic []string
	if m := ctx.String(mnemonicFlagName); len(m) > 0 {
		mnemonic = strings.Fields(m)
	} else {
		seed, err := svc.profiles.GenSeed(ctx.Context)
		if err != nil {
			return err
		}
		mnemonic = seed
		fmt.Fprintln(ctx.App.Writer, "Write down the mnemonic of the new profile:")
		fmt.Fprintln(ctx.App.Writer, strings.Join(mnemonic, " "))
	}

	p, err := svc.profiles.CreateProfile(ctx.Context, newProfileArgs(ctx, mnemonic))
	if err != nil {
		return err
	}
	return printJSON(ctx, newProfileInfo(*p))
}

func restoreProfileAction(ctx *cli.Context) error {
	mnemonic := strings.Fields(ctx.String(mnemonicFlagName))

	p, err := svc.profiles.RestoreProfile(
		ctx.Context, newProfileArgs(ctx, mnemonic), ctx.IntSlice(seedIndexFlagName),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, newProfileInfo(*p))
}

func listProfilesAction(ctx *cli.Context) error {
	profiles, err := svc.profiles.ListProfiles(ctx.Context)
	if err != nil {
		return err
	}

	infos := make([]profileInfo, 0, len(profiles))
	for _, p := range profiles {
		infos = append(infos, newProfileInfo(p))
	}
	return printJSON(ctx, infos)
}

func changePasswordAction(ctx *cli.Context) error {
	if err := svc.profiles.ChangePassword(
		ctx.Context,
		ctx.String(nameFlagName),
		ctx.String(curPwdFlagName),
		ctx.String(newPwdFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "Done")
	return nil
}

func revealMnemonicAction(ctx *cli.Context) error {
	mnemonic, err := svc.profiles.RevealMnemonic(
		ctx.Context, ctx.String(nameFlagName), ctx.String(passwordFlagName),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, strings.Join(mnemonic, " "))
	return nil
}

func removeProfileAction(ctx *cli.Context) error {
	if err := svc.profiles.DeleteProfile(
		ctx.Context, ctx.String(nameFlagName), ctx.String(passwordFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "Done")
	return nil
}

func newProfileArgs(
	ctx *cli.Context, mnemonic []string,
) application.CreateProfileArgs {
	networkType := config.GetNetworkType()
	if n := ctx.String(networkFlagName); len(n) > 0 {
		networkType = domain.NetworkType(strings.ToLower(n))
	}

	return application.CreateProfileArgs{
		Name:           ctx.String(nameFlagName),
		NetworkType:    networkType,
		GenerationHash: ctx.String(generationHashFlagName),
		Mnemonic:       mnemonic,
		Password:       ctx.String(passwordFlagName),
		PasswordHint:   ctx.String(hintFlagName),
	}
}
