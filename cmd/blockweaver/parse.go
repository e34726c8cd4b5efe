package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a block document into JSON",
	Long:  `Parse reads a delimited block document (a file or stdin) and prints its blocks with their extracted attributes as JSON.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		in, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer in.Close()

		doc, err := engine.ParseDocument(in)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
