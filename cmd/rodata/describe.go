package main

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/recera/rodata"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <entityset|entity|function|property>",
	Short: "Print the JSON Schema for a command's query options",
	Long: `describe reflects one of the query option structs into a JSON
Schema document, so external tooling (a form generator, a script
validator) can build against this CLI's query shape without parsing
--help output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var target any
		switch args[0] {
		case "entityset":
			target = &rodata.EntitySetQuery{}
		case "entity":
			target = &rodata.EntityIndividualQuery{}
		case "function":
			target = &rodata.FunctionQuery{}
		case "property":
			target = &rodata.PropertyQuery{}
		default:
			return fmt.Errorf("unknown describe target %q (want entityset, entity, function, or property)", args[0])
		}

		reflector := &jsonschema.Reflector{DoNotReference: true}
		schema := reflector.Reflect(target)

		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("describe: marshaling schema: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
