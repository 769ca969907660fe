package utils

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	develBuildVersion  = "(devel)"
	gitExecutableName  = "git"
	gitDescribeCommand = "describe"
)

var errGitDirectoryNotFound = errors.New(".git directory not found")

// GetApplicationVersion reports the module version recorded in the binary.
// Development builds fall back to git describe run from the enclosing repository.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}

	repositoryDirectory, lookupError := findRepositoryDirectory(".")
	if lookupError != nil {
		return unknownVersion
	}
	describeArgumentSets := [][]string{
		{gitDescribeCommand, "--tags", "--exact-match"},
		{gitDescribeCommand, "--tags", "--long", "--dirty"},
	}
	for _, describeArguments := range describeArgumentSets {
		// #nosec G204
		describeCommand := exec.Command(gitExecutableName, describeArguments...)
		describeCommand.Dir = repositoryDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return unknownVersion
}

// findRepositoryDirectory walks upward from startDirectory to the first directory holding a .git folder.
func findRepositoryDirectory(startDirectory string) (string, error) {
	currentDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", absoluteError
	}
	for {
		gitInformation, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if statError == nil && gitInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", errGitDirectoryNotFound
		}
		currentDirectory = parentDirectory
	}
}
