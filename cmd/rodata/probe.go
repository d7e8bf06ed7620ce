package main

import (
	"context"
	"fmt"
	"io"

	"github.com/buger/jsonparser"
	"github.com/recera/rodata/internal/fetch"
	"github.com/spf13/cobra"
)

var probeFlags commonFlags

var probeCmd = &cobra.Command{
	Use:   "probe <url>",
	Short: "Inspect a response's top-level shape without streaming it",
	Long: `probe fetches url once, buffers the whole body (unlike every other
command here, which never does), and prints each top-level key's JSON
type. It exists purely as a pre-flight sanity check — "does this even
look like an OData response" — before committing to a full streaming
read, and deliberately bypasses the tokenizer entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		user, pass := probeFlags.credentials()

		rc, err := fetch.New().Fetch(context.Background(), resolveURL(cfg, args[0]), user, pass)
		if err != nil {
			return err
		}
		defer rc.Close()

		body, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("probe: reading response: %w", err)
		}

		if len(body) > 0 && body[0] == '[' {
			fmt.Println("top-level shape: array")
			n := 0
			_, err := jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
				n++
			})
			if err != nil {
				return fmt.Errorf("probe: %w", err)
			}
			fmt.Printf("  %d element(s)\n", n)
			return nil
		}

		fmt.Println("top-level shape: object")
		err = jsonparser.ObjectEach(body, func(key, value []byte, dataType jsonparser.ValueType, offset int) error {
			fmt.Printf("  %-30s %s\n", string(key), dataType)
			return nil
		})
		if err != nil {
			return fmt.Errorf("probe: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringVar(&probeFlags.user, "user", "", "Basic Auth username")
	probeCmd.Flags().StringVar(&probeFlags.pass, "pass", "", "Basic Auth password")
}
