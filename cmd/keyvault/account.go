package main

import (
	"fmt"

	"github.com/tdex-network/keyvault/internal/core/domain"
	"github.com/tdex-network/keyvault/pkg/wallet"
	"github.com/urfave/cli/v2"
)

const (
	profileFlagName     = "profile"
	idFlagName          = "id"
	indexFlagName       = "index"
	privateKeyFlagName  = "private_key"
	remoteIndexFlagName = "remote_index"
)

var (
	profileFlag = &cli.StringFlag{
		Name:     profileFlagName,
		Usage:    "the name of the profile owning the account",
		Required: true,
	}
	accountIDFlag = &cli.StringFlag{
		Name:     idFlagName,
		Usage:    "the id of the account",
		Required: true,
	}
	accountNameFlag = &cli.StringFlag{
		Name:     nameFlagName,
		Usage:    "the name of the account, unique within the profile",
		Required: true,
	}
)

type accountInfo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	Path            string `json:"path,omitempty"`
	PublicKey       string `json:"publicKey"`
	Xpub            string `json:"xpub,omitempty"`
	RemotePath      string `json:"remotePath,omitempty"`
	RemotePublicKey string `json:"remotePublicKey,omitempty"`
	CreatedAt       int64  `json:"createdAt"`
}

func newAccountInfo(a domain.Account) accountInfo {
	return accountInfo{
		ID:              a.ID,
		Name:            a.Name,
		Type:            string(a.Type),
		Path:            a.Path,
		PublicKey:       a.PublicKey,
		Xpub:            a.ExtendedPublicKey,
		RemotePath:      a.RemotePath,
		RemotePublicKey: a.RemotePublicKey,
		CreatedAt:       a.CreatedAt,
	}
}

var account = cli.Command{
	Name:   "account",
	Usage:  "manage the accounts of a profile",
	Before: initServices,
	After:  closeServices,
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "derive a new account from the profile mnemonic",
			Flags: []cli.Flag{
				profileFlag,
				accountNameFlag,
				passwordFlag,
				&cli.StringFlag{
					Name:  indexFlagName,
					Usage: "the seed index of the account, from 0 to 9. Defaults to the first unused one",
				},
			},
			Action: addAccountAction,
		},
		{
			Name:  "import",
			Usage: "import an account from its private key",
			Flags: []cli.Flag{
				profileFlag,
				accountNameFlag,
				passwordFlag,
				&cli.StringFlag{
					Name:     privateKeyFlagName,
					Usage:    "the private key to import, in hex format",
					Required: true,
				},
			},
			Action: importAccountAction,
		},
		{
			Name:  "remote",
			Usage: "link a remote key to a seed account",
			Flags: []cli.Flag{
				accountIDFlag,
				passwordFlag,
				&cli.StringFlag{
					Name:     remoteIndexFlagName,
					Usage:    "the remote index, from 1 to 10",
					Required: true,
				},
			},
			Action: linkRemoteAction,
		},
		{
			Name:   "list",
			Usage:  "list the accounts of a profile",
			Flags:  []cli.Flag{profileFlag},
			Action: listAccountsAction,
		},
		{
			Name:   "reveal",
			Usage:  "reveal the private key of an account",
			Flags:  []cli.Flag{accountIDFlag, passwordFlag},
			Action: revealPrivateKeyAction,
		},
		{
			Name:   "rename",
			Usage:  "rename an account",
			Flags:  []cli.Flag{accountIDFlag, accountNameFlag},
			Action: renameAccountAction,
		},
		{
			Name:   "default",
			Usage:  "make an account the default one of its profile",
			Flags:  []cli.Flag{profileFlag, accountIDFlag},
			Action: setDefaultAccountAction,
		},
		{
			Name:   "remove",
			Usage:  "remove an account",
			Flags:  []cli.Flag{accountIDFlag, passwordFlag},
			Action: removeAccountAction,
		},
	},
}

func addAccountAction(ctx *cli.Context) error {
	profileName := ctx.String(profileFlagName)
	name := ctx.String(nameFlagName)
	password := ctx.String(passwordFlagName)

	var (
		a   *domain.Account
		err error
	)
	if ctx.IsSet(indexFlagName) {
		index, perr := wallet.ParseSeedIndex(ctx.String(indexFlagName))
		if perr != nil {
			return perr
		}
		a, err = svc.accounts.AddSeedAccountAt(
			ctx.Context, profileName, name, index, password,
		)
	} else {
		a, err = svc.accounts.AddSeedAccount(ctx.Context, profileName, name, password)
	}
	if err != nil {
		return err
	}
	return printJSON(ctx, newAccountInfo(*a))
}

func importAccountAction(ctx *cli.Context) error {
	a, err := svc.accounts.ImportPrivateKeyAccount(
		ctx.Context,
		ctx.String(profileFlagName),
		ctx.String(nameFlagName),
		ctx.String(privateKeyFlagName),
		ctx.String(passwordFlagName),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, newAccountInfo(*a))
}

func linkRemoteAction(ctx *cli.Context) error {
	remoteIndex, err := wallet.ParseRemoteIndex(ctx.String(remoteIndexFlagName))
	if err != nil {
		return err
	}

	a, err := svc.accounts.LinkRemoteAccount(
		ctx.Context, ctx.String(idFlagName), remoteIndex,
		ctx.String(passwordFlagName),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, newAccountInfo(*a))
}

func listAccountsAction(ctx *cli.Context) error {
	accounts, err := svc.accounts.ListAccounts(
		ctx.Context, ctx.String(profileFlagName),
	)
	if err != nil {
		return err
	}

	infos := make([]accountInfo, 0, len(accounts))
	for _, a := range accounts {
		infos = append(infos, newAccountInfo(a))
	}
	return printJSON(ctx, infos)
}

func revealPrivateKeyAction(ctx *cli.Context) error {
	prvkey, err := svc.accounts.RevealPrivateKey(
		ctx.Context, ctx.String(idFlagName), ctx.String(passwordFlagName),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, prvkey)
	return nil
}

func renameAccountAction(ctx *cli.Context) error {
	if err := svc.accounts.RenameAccount(
		ctx.Context, ctx.String(idFlagName), ctx.String(nameFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "Done")
	return nil
}

func setDefaultAccountAction(ctx *cli.Context) error {
	if err := svc.accounts.SetDefaultAccount(
		ctx.Context, ctx.String(profileFlagName), ctx.String(idFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "Done")
	return nil
}

func removeAccountAction(ctx *cli.Context) error {
	if err := svc.accounts.RemoveAccount(
		ctx.Context, ctx.String(idFlagName), ctx.String(passwordFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "Done")
	return nil
}
