// Package output persists and prints rendered trees.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/foldertree/internal/types"
)

const (
	// treeFilePermissions are applied when the tree file is created.
	treeFilePermissions = 0o644

	errorEmptyOutputNameMessage = "output file name is empty"
	errorOutputNameFormat       = "output file name %q must not contain a path separator"
	errorWriteTreeFileFormat    = "write %s: %w"
)

// ErrEmptyOutputName is returned when no output file name is configured.
var ErrEmptyOutputName = errors.New(errorEmptyOutputNameMessage)

// TreeFilePath returns the location of the tree file inside the root directory.
// The name must be a single path segment so the file always lands directly inside the root.
func TreeFilePath(rootDirectoryPath string, outputFileName string) (string, error) {
	if outputFileName == "" {
		return "", ErrEmptyOutputName
	}
	if filepath.Base(outputFileName) != outputFileName {
		return "", fmt.Errorf(errorOutputNameFormat, outputFileName)
	}
	return filepath.Join(rootDirectoryPath, outputFileName), nil
}

// WriteTreeFile writes the tree text to outputPath, replacing any existing file.
func WriteTreeFile(outputPath string, tree string) error {
	if writeError := os.WriteFile(outputPath, []byte(tree), treeFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteTreeFileFormat, outputPath, writeError)
	}
	return nil
}

// PrintTrees writes every rendered tree to writer, separating consecutive trees with a blank line.
func PrintTrees(writer io.Writer, results []types.TreeResult) error {
	for index, result := range results {
		if index > 0 {
			if _, err := fmt.Fprintln(writer); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(writer, result.Tree); err != nil {
			return err
		}
	}
	return nil
}

// JoinTrees concatenates rendered trees the same way PrintTrees lays them out.
func JoinTrees(results []types.TreeResult) string {
	var builder strings.Builder
	_ = PrintTrees(&builder, results)
	return builder.String()
}
