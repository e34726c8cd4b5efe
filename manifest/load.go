package manifest

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var loaders = map[string]func(path string) ([]Definition, error){
	".hcl":  LoadHCLFile,
	".yaml": LoadYAMLFile,
	".yml":  LoadYAMLFile,
}

// LoadFiles loads every manifest named by paths. Directories are walked
// recursively for .hcl, .yaml and .yml files, in lexical order.
func LoadFiles(logger *slog.Logger, paths ...string) ([]Definition, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var defs []Definition
	for _, root := range paths {
		files, err := findManifests(root)
		if err != nil {
			return nil, fmt.Errorf("failed to walk manifest path %s: %w", root, err)
		}
		if len(files) == 0 {
			logger.Warn("No manifest files found in path", "path", root)
			continue
		}
		for _, file := range files {
			loaded, err := loaders[strings.ToLower(filepath.Ext(file))](file)
			if err != nil {
				return nil, err
			}
			logger.Debug("Loaded block manifest", "file", file, "blocks", len(loaded))
			defs = append(defs, loaded...)
		}
	}
	return defs, nil
}

func findManifests(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if _, ok := loaders[strings.ToLower(filepath.Ext(root))]; !ok {
			return nil, fmt.Errorf("unsupported manifest extension %q", filepath.Ext(root))
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if _, ok := loaders[strings.ToLower(filepath.Ext(d.Name()))]; ok && !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
