package main

import (
	"context"

	"github.com/recera/rodata"
	"github.com/spf13/cobra"
)

var propertyFlags commonFlags

var propertyCmd = &cobra.Command{
	Use:   "property <url>",
	Short: "Stream a single raw property value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, output, err := propertyFlags.resolve(cfg)
		if err != nil {
			return err
		}
		user, pass := propertyFlags.credentials()

		q := rodata.PropertyQuery{URL: resolveURL(cfg, args[0]), User: user, Pass: pass}

		diag.Info("[%s] streaming property %s", newRunID(), q.URL)
		client := newClient(cmd, cfg)
		return client.RunProperty(context.Background(), q, format, output)
	},
}

func init() {
	rootCmd.AddCommand(propertyCmd)
	addQueryFlags(propertyCmd, &propertyFlags, false)
}
