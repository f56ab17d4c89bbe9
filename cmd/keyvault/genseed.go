package main

import (
	"fmt"
	"strings"

	"github.com/tdex-network/keyvault/internal/core/application"
	"github.com/urfave/cli/v2"
)

var genseed = cli.Command{
	Name:   "genseed",
	Usage:  "generate a mnemonic seed",
	Action: genSeedAction,
}

func genSeedAction(ctx *cli.Context) error {
	seed, err := application.GenSeed()
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, strings.Join(seed, " "))
	return nil
}
