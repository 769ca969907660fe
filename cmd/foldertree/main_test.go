package main_test

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const treeFileName = "tree.txt"

// #nosec G204
func buildBinary(testSetup *testing.T) string {
	testSetup.Helper()
	binaryName := "foldertree_integration_test_binary"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(testSetup.TempDir(), binaryName)

	currentDirectory, directoryError := os.Getwd()
	if directoryError != nil {
		testSetup.Fatalf("Failed to get current working directory: %v", directoryError)
	}

	buildCommand := exec.Command("go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = currentDirectory
	outputData, buildErr := buildCommand.CombinedOutput()
	if buildErr != nil {
		testSetup.Fatalf("Failed to build binary in %s: %v\nBuild Output:\n%s", currentDirectory, buildErr, string(outputData))
	}
	return binaryPath
}

// #nosec G204
func runCommand(testSetup *testing.T, binaryPath string, arguments []string, workingDirectory string, homeDirectory string) (string, string, error) {
	testSetup.Helper()
	command := exec.Command(binaryPath, arguments...)
	command.Dir = workingDirectory
	command.Env = append(os.Environ(), "HOME="+homeDirectory, "USERPROFILE="+homeDirectory)

	var standardOutputBuffer, standardErrorBuffer bytes.Buffer
	command.Stdout = &standardOutputBuffer
	command.Stderr = &standardErrorBuffer

	runError := command.Run()
	return standardOutputBuffer.String(), standardErrorBuffer.String(), runError
}

func describeRun(binaryPath string, arguments []string, standardOutput string, standardError string) string {
	return fmt.Sprintf("--- Command ---\n%s %s\n--- Standard Output ---\n%s\n--- Standard Error ---\n%s",
		filepath.Base(binaryPath), strings.Join(arguments, " "), standardOutput, standardError)
}

func writeFixture(testSetup *testing.T, rootDirectory string, relativePath string) {
	testSetup.Helper()
	absolutePath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
	if err := os.MkdirAll(filepath.Dir(absolutePath), 0o755); err != nil {
		testSetup.Fatalf("mkdir for %s: %v", relativePath, err)
	}
	if err := os.WriteFile(absolutePath, []byte("fixture"), 0o644); err != nil {
		testSetup.Fatalf("write %s: %v", relativePath, err)
	}
}

func TestBinaryGeneratesTreeFile(testSetup *testing.T) {
	if testing.Short() {
		testSetup.Skip("builds the binary")
	}
	binaryPath := buildBinary(testSetup)
	workingDirectory := testSetup.TempDir()
	homeDirectory := testSetup.TempDir()
	projectDirectory := filepath.Join(workingDirectory, "project")
	writeFixture(testSetup, projectDirectory, "node_modules/left-pad/index.js")
	writeFixture(testSetup, projectDirectory, "cmd/app/main.go")

	arguments := []string{"--print", "project"}
	standardOutput, standardError, runError := runCommand(testSetup, binaryPath, arguments, workingDirectory, homeDirectory)
	if runError != nil {
		testSetup.Fatalf("Command failed: %v\n%s", runError, describeRun(binaryPath, arguments, standardOutput, standardError))
	}

	expectedTree := "project\n└── cmd\n    └── app\n        └── main.go\n"
	treeContent, readError := os.ReadFile(filepath.Join(projectDirectory, treeFileName))
	if readError != nil {
		testSetup.Fatalf("read tree file: %v", readError)
	}
	if string(treeContent) != expectedTree {
		testSetup.Fatalf("unexpected tree file:\n%s\nwant:\n%s", treeContent, expectedTree)
	}
	if standardOutput != expectedTree {
		testSetup.Fatalf("unexpected stdout:\n%s", describeRun(binaryPath, arguments, standardOutput, standardError))
	}
	for _, expectedLog := range []string{"Using default ignore patterns (9 rules)", "tree.txt generated successfully!"} {
		if !strings.Contains(standardError, expectedLog) {
			testSetup.Fatalf("expected log %q on stderr\n%s", expectedLog, describeRun(binaryPath, arguments, standardOutput, standardError))
		}
	}
}

func TestBinaryFailsWithoutPath(testSetup *testing.T) {
	if testing.Short() {
		testSetup.Skip("builds the binary")
	}
	binaryPath := buildBinary(testSetup)
	workingDirectory := testSetup.TempDir()

	standardOutput, standardError, runError := runCommand(testSetup, binaryPath, nil, workingDirectory, testSetup.TempDir())
	if runError == nil {
		testSetup.Fatalf("Command succeeded unexpectedly.\n%s", describeRun(binaryPath, nil, standardOutput, standardError))
	}
	if !strings.Contains(standardError, "no folder selected") {
		testSetup.Fatalf("expected the missing folder message\n%s", describeRun(binaryPath, nil, standardOutput, standardError))
	}
	if _, statError := os.Stat(filepath.Join(workingDirectory, treeFileName)); !os.IsNotExist(statError) {
		testSetup.Fatalf("no tree file should be written, stat returned %v", statError)
	}
}

func TestBinaryReportsVersion(testSetup *testing.T) {
	if testing.Short() {
		testSetup.Skip("builds the binary")
	}
	binaryPath := buildBinary(testSetup)
	arguments := []string{"--version"}
	standardOutput, standardError, runError := runCommand(testSetup, binaryPath, arguments, testSetup.TempDir(), testSetup.TempDir())
	if runError != nil {
		testSetup.Fatalf("Command failed: %v\n%s", runError, describeRun(binaryPath, arguments, standardOutput, standardError))
	}
	if !strings.HasPrefix(standardOutput, "foldertree version: ") {
		testSetup.Fatalf("unexpected version output\n%s", describeRun(binaryPath, arguments, standardOutput, standardError))
	}
}
