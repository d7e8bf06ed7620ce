package main

import (
	"context"

	"github.com/recera/rodata"
	"github.com/spf13/cobra"
)

var entitySetFlags commonFlags

var entitySetCmd = &cobra.Command{
	Use:   "entityset <url>",
	Short: "Stream a paginated entity-set collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, output, err := entitySetFlags.resolve(cfg)
		if err != nil {
			return err
		}
		user, pass := entitySetFlags.credentials()

		q := rodata.EntitySetQuery{
			URL:     resolveURL(cfg, args[0]),
			Select:  entitySetFlags.selectClause,
			Filter:  entitySetFlags.filter,
			OrderBy: entitySetFlags.orderBy,
			User:    user,
			Pass:    pass,
		}

		diag.Info("[%s] streaming entity set %s", newRunID(), q.URL)
		client := newClient(cmd, cfg)
		return client.RunEntitySet(context.Background(), q, format, output)
	},
}

func init() {
	rootCmd.AddCommand(entitySetCmd)
	addQueryFlags(entitySetCmd, &entitySetFlags, true)
}
