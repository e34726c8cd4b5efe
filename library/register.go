// Package library holds the block types shipped with the engine.
package library

import (
	"fmt"

	"github.com/grahms/blockweaver"
)

// Register adds every library block to reg.
func Register(reg *blockweaver.Registry) error {
	blocks := []struct {
		name string
		def  blockweaver.BlockType
	}{
		{ButtonName, Button()},
		{CoverImageName, CoverImage()},
	}
	for _, b := range blocks {
		if err := reg.Register(b.name, b.def); err != nil {
			return fmt.Errorf("registering %s: %w", b.name, err)
		}
	}
	return nil
}

// Messages lists the UI strings the library's edit functions translate.
func Messages() []string {
	return []string{
		"A nice little button. Call something out with it.",
		"Stand on a line",
		"Add text…",
		"Apply",
		"Button Background Color",
		"Button Text Color",
		"Edit image",
		"Cover Image is a bold image block with an optional title.",
		"Cover Image Settings",
		"Fixed Background",
		"Background Dimness",
		"Show Button",
		"Cover Image",
		"Drag image here or insert from media library",
		"Insert from Media Library",
		"Write title…",
	}
}
