// Package config compiles ignore patterns and loads application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/foldertree/internal/utils"
)

const (
	// warningIgnoreFileMessage is logged when an existing ignore file cannot be read.
	warningIgnoreFileMessage = "Error reading " + utils.GitIgnoreFileName
	// errorIgnoreFileNotRegularFormat reports an ignore file path that is not a regular file.
	errorIgnoreFileNotRegularFormat = "%s is not a regular file"
	// errorIgnoreFileEncodingFormat reports an ignore file that is not valid UTF-8.
	errorIgnoreFileEncodingFormat = "%s line %d is not valid UTF-8"

	lineSeparator = "\n"
	byteOrderMark = '\ufeff'
)

var defaultIgnorePatterns = [...]string{
	"node_modules",
	".vscode",
	"out",
	"build",
	"dist",
	utils.GitDirectoryName,
	".DS_Store",
	"Thumbs.db",
	"*.log",
}

// DefaultIgnorePatterns returns a fresh copy of the built-in ignore patterns in their canonical order.
func DefaultIgnorePatterns() []string {
	patterns := make([]string, len(defaultIgnorePatterns))
	copy(patterns, defaultIgnorePatterns[:])
	return patterns
}

// IgnoreFileStatus describes the outcome of reading an ignore file.
type IgnoreFileStatus int

const (
	// IgnoreFileMissing means no ignore file exists at the expected location.
	IgnoreFileMissing IgnoreFileStatus = iota
	// IgnoreFileLoaded means the ignore file was read and parsed.
	IgnoreFileLoaded
	// IgnoreFileFailed means the ignore file exists but could not be read.
	IgnoreFileFailed
)

// IgnoreFileResult is the explicit outcome of LoadIgnoreFilePatterns.
type IgnoreFileResult struct {
	Path     string
	Status   IgnoreFileStatus
	Patterns []string
	Err      error
}

// PatternSet is a deduplicated, ordered collection of ignore patterns.
type PatternSet struct {
	Patterns         []string
	IgnoreFilePath   string
	IgnoreFileLoaded bool
}

// Len returns the number of distinct patterns in the set.
func (patternSet PatternSet) Len() int {
	return len(patternSet.Patterns)
}

// Contains reports whether the exact pattern string is part of the set.
func (patternSet PatternSet) Contains(pattern string) bool {
	return utils.ContainsString(patternSet.Patterns, pattern)
}

// LoadIgnoreFilePatterns reads an ignore file and returns its non-empty, non-comment lines.
// A missing file is reported with IgnoreFileMissing rather than as a failure.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) IgnoreFileResult {
	result := IgnoreFileResult{Path: ignoreFilePath}

	fileInformation, statError := os.Stat(ignoreFilePath)
	if statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			result.Status = IgnoreFileMissing
			return result
		}
		return failedIgnoreFile(result, statError)
	}
	if !fileInformation.Mode().IsRegular() {
		return failedIgnoreFile(result, fmt.Errorf(errorIgnoreFileNotRegularFormat, ignoreFilePath))
	}

	fileContent, readFileError := os.ReadFile(ignoreFilePath)
	if readFileError != nil {
		return failedIgnoreFile(result, readFileError)
	}

	var ignorePatterns []string
	for lineIndex, rawLine := range strings.Split(string(fileContent), lineSeparator) {
		if !utf8.ValidString(rawLine) {
			return failedIgnoreFile(result, fmt.Errorf(errorIgnoreFileEncodingFormat, ignoreFilePath, lineIndex+1))
		}
		trimmedLine := strings.TrimFunc(rawLine, isIgnoreLinePadding)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, utils.CommentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}

	result.Status = IgnoreFileLoaded
	result.Patterns = ignorePatterns
	return result
}

// isIgnoreLinePadding reports whitespace and the byte order mark, both stripped from pattern lines.
func isIgnoreLinePadding(character rune) bool {
	return unicode.IsSpace(character) || character == byteOrderMark
}

func failedIgnoreFile(result IgnoreFileResult, failure error) IgnoreFileResult {
	result.Status = IgnoreFileFailed
	result.Err = failure
	return result
}

// CompilePatterns merges the provided defaults with the patterns of the ignore file at the root.
// Defaults always survive: a missing ignore file is skipped and an unreadable one is logged and
// skipped. The result is deduplicated by exact string, keeping the first occurrence.
func CompilePatterns(rootPath string, defaults []string, logger *zap.Logger) PatternSet {
	return compilePatternSet(rootPath, defaults, nil, true, logger)
}

// CompilePatternsWithOptions behaves like CompilePatterns and additionally appends exclusion
// patterns. When useGitignore is false the ignore file is not consulted.
func CompilePatternsWithOptions(rootPath string, defaults []string, exclusionPatterns []string, useGitignore bool, logger *zap.Logger) PatternSet {
	return compilePatternSet(rootPath, defaults, exclusionPatterns, useGitignore, logger)
}

func compilePatternSet(rootPath string, defaults []string, exclusionPatterns []string, useGitignore bool, logger *zap.Logger) PatternSet {
	logger = utils.LoggerOrNop(logger)
	ignoreFilePath := filepath.Join(rootPath, utils.GitIgnoreFileName)
	combinedPatterns := append([]string{}, defaults...)
	patternSet := PatternSet{IgnoreFilePath: ignoreFilePath}

	if useGitignore {
		ignoreFileResult := LoadIgnoreFilePatterns(ignoreFilePath)
		switch ignoreFileResult.Status {
		case IgnoreFileLoaded:
			combinedPatterns = append(combinedPatterns, ignoreFileResult.Patterns...)
			patternSet.IgnoreFileLoaded = true
		case IgnoreFileFailed:
			logger.Warn(warningIgnoreFileMessage,
				zap.String("path", ignoreFileResult.Path),
				zap.Error(ignoreFileResult.Err),
			)
		case IgnoreFileMissing:
		}
	}

	for _, pattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		combinedPatterns = append(combinedPatterns, trimmedPattern)
	}

	patternSet.Patterns = utils.DeduplicatePatterns(combinedPatterns)
	return patternSet
}
