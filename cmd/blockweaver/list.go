package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

type attributeInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Source  string `json:"source"`
	Default any    `json:"default,omitempty"`
}

type blockInfo struct {
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Category    string          `json:"category"`
	Deprecated  int             `json:"deprecated,omitempty"`
	Attributes  []attributeInfo `json:"attributes"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered block types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		tr := engine.Translator()

		var out []blockInfo
		for _, bt := range engine.Registry().Types() {
			info := blockInfo{
				Name:        bt.Name,
				Title:       tr.Translate(bt.Title),
				Description: tr.Translate(bt.Description),
				Icon:        bt.Icon,
				Category:    bt.Category,
				Deprecated:  len(bt.Deprecated),
			}
			for _, spec := range bt.Attributes {
				info.Attributes = append(info.Attributes, attributeInfo{
					Name:    spec.Name,
					Kind:    spec.Kind.String(),
					Source:  spec.Source.Type.String(),
					Default: spec.ResolvedDefault(),
				})
			}
			out = append(out, info)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
