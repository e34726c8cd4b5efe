package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Check that every block matches its save output",
	Long:  `Verify parses a document and reports each block whose markup differs from what its block type would save, with a line diff. It fails when any block is invalid.`,
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

		out := cmd.OutOrStdout()
		invalid := 0
		for i, b := range doc.Blocks {
			switch {
			case b.Freeform:
				continue
			case b.Unrecognized:
				fmt.Fprintf(out, "block %d (%s): not registered, kept as is\n", i, b.Name)
			case !b.Valid:
				invalid++
				fmt.Fprintf(out, "block %d (%s): invalid\n%s\n", i, b.Name, b.Diff)
			case b.Deprecation > 0:
				fmt.Fprintf(out, "block %d (%s): valid, deprecated version %d\n", i, b.Name, b.Deprecation)
			}
		}
		if invalid > 0 {
			return fmt.Errorf("%d invalid block(s)", invalid)
		}
		fmt.Fprintf(out, "%d block(s) ok\n", len(doc.Blocks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
