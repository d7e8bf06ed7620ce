package main

import (
	"context"

	"github.com/recera/rodata"
	"github.com/spf13/cobra"
)

var functionFlags commonFlags

var functionCmd = &cobra.Command{
	Use:   "function <url>",
	Short: "Call an OData function import",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, output, err := functionFlags.resolve(cfg)
		if err != nil {
			return err
		}
		user, pass := functionFlags.credentials()

		q := rodata.FunctionQuery{URL: resolveURL(cfg, args[0]), User: user, Pass: pass}

		diag.Info("[%s] calling function %s", newRunID(), q.URL)
		client := newClient(cmd, cfg)
		return client.RunFunction(context.Background(), q, format, output)
	},
}

func init() {
	rootCmd.AddCommand(functionCmd)
	addQueryFlags(functionCmd, &functionFlags, false)
}
