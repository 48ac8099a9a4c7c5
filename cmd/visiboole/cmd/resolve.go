package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/visiboole/vbcore/pkg/design"
)

// dirResolver looks up an instantiated module by file name in the same
// directory as the top-level design, the simplest file-layout a caller
// can supply for design.PathResolver.
func dirResolver(topLevel string) *design.FileResolver {
	dir := filepath.Dir(topLevel)
	return design.NewFileResolver(func(module string) (string, error) {
		candidate := filepath.Join(dir, module+".vb")
		return candidate, nil
	})
}

func loadDesign(path string) (*design.Design, error) {
	d, err := design.ParseFile(path, dirResolver(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse design: %w", err)
	}
	return d, nil
}
