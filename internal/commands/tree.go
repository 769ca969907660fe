// Package commands contains the core logic for rendering directory trees.
package commands

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/foldertree/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
	lineTerminator      = "\n"

	// directoryErrorPlaceholder replaces the listing of a directory that cannot be read.
	directoryErrorPlaceholder = "[Error reading directory]"

	// debugReadDirectoryMessage is logged when a directory listing fails.
	debugReadDirectoryMessage = "Skipping unreadable directory"
)

// GenerateTree renders the tree of rootDirectoryPath headed by a line holding the root's own name.
func (treeBuilder *TreeBuilder) GenerateTree(rootDirectoryPath string) string {
	var builder strings.Builder
	builder.WriteString(RootName(rootDirectoryPath))
	builder.WriteString(lineTerminator)
	builder.WriteString(treeBuilder.RenderTree(rootDirectoryPath, utils.EmptyString))
	return builder.String()
}

// RenderTree renders the filtered children of directoryPath, one line per entry, each line
// starting with prefix. Directories are followed by their own children. A directory that
// cannot be listed yields a single placeholder line.
func (treeBuilder *TreeBuilder) RenderTree(directoryPath string, prefix string) string {
	var builder strings.Builder
	treeBuilder.renderDirectory(&builder, directoryPath, prefix)
	return builder.String()
}

func (treeBuilder *TreeBuilder) renderDirectory(builder *strings.Builder, directoryPath string, prefix string) {
	readDirectory := treeBuilder.ReadDirectory
	if readDirectory == nil {
		readDirectory = ReadDirectoryUnsorted
	}
	directoryEntries, readDirectoryError := readDirectory(directoryPath)
	if readDirectoryError != nil {
		utils.LoggerOrNop(treeBuilder.Logger).Debug(debugReadDirectoryMessage,
			zap.String("path", directoryPath),
			zap.Error(readDirectoryError),
		)
		builder.WriteString(prefix + directoryErrorPlaceholder + lineTerminator)
		return
	}

	visibleEntries := make([]os.DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if utils.ShouldIgnoreName(directoryEntry.Name(), treeBuilder.IgnorePatterns) {
			continue
		}
		visibleEntries = append(visibleEntries, directoryEntry)
	}

	for index, directoryEntry := range visibleEntries {
		isLastEntry := index == len(visibleEntries)-1
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if isLastEntry {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}
		builder.WriteString(prefix + connector + directoryEntry.Name() + lineTerminator)
		if directoryEntry.IsDir() {
			treeBuilder.renderDirectory(builder, filepath.Join(directoryPath, directoryEntry.Name()), childPrefix)
		}
	}
}

// RootName returns the last path segment of the root directory. The file system root keeps its separator.
func RootName(rootDirectoryPath string) string {
	return filepath.Base(filepath.Clean(rootDirectoryPath))
}
