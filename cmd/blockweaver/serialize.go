package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grahms/blockweaver"
)

var serializeCmd = &cobra.Command{
	Use:   "serialize [file]",
	Short: "Serialize parsed JSON back into a block document",
	Long:  `Serialize reads the JSON printed by "parse" and writes the document in canonical form. Pipe "parse" into it to normalize a document.`,
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

		var doc blockweaver.Document
		if err := json.NewDecoder(in).Decode(&doc); err != nil {
			return fmt.Errorf("decoding document: %w", err)
		}
		return engine.SerializeDocument(cmd.OutOrStdout(), &doc)
	},
}

func init() {
	rootCmd.AddCommand(serializeCmd)
}
