package commands

import (
	"os"

	"go.uber.org/zap"

	"github.com/temirov/foldertree/internal/utils"
)

// DirectoryReader lists the entries of one directory.
type DirectoryReader func(directoryPath string) ([]os.DirEntry, error)

// TreeBuilder renders directory trees using configured options.
type TreeBuilder struct {
	IgnorePatterns []string
	ReadDirectory  DirectoryReader
	Logger         *zap.Logger
}

// NewTreeBuilder returns a TreeBuilder that reads directories in native file-system order.
func NewTreeBuilder(ignorePatterns []string, logger *zap.Logger) *TreeBuilder {
	return &TreeBuilder{
		IgnorePatterns: ignorePatterns,
		ReadDirectory:  ReadDirectoryUnsorted,
		Logger:         utils.LoggerOrNop(logger),
	}
}

// ReadDirectoryUnsorted returns every entry of the directory in the order the file system
// yields them. The directory handle is closed before returning.
//
// #nosec G304
func ReadDirectoryUnsorted(directoryPath string) ([]os.DirEntry, error) {
	directoryHandle, openError := os.Open(directoryPath)
	if openError != nil {
		return nil, openError
	}
	defer directoryHandle.Close()
	return directoryHandle.ReadDir(-1)
}
