package main

import (
	"context"

	"github.com/recera/rodata"
	"github.com/spf13/cobra"
)

var entityFlags commonFlags

var entityCmd = &cobra.Command{
	Use:   "entity <url>",
	Short: "Stream a single entity by key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, output, err := entityFlags.resolve(cfg)
		if err != nil {
			return err
		}
		user, pass := entityFlags.credentials()

		q := rodata.EntityIndividualQuery{URL: resolveURL(cfg, args[0]), User: user, Pass: pass}

		diag.Info("[%s] streaming entity %s", newRunID(), q.URL)
		client := newClient(cmd, cfg)
		return client.RunEntityIndividual(context.Background(), q, format, output)
	},
}

func init() {
	rootCmd.AddCommand(entityCmd)
	addQueryFlags(entityCmd, &entityFlags, false)
}
