// Package utils contains general helper functions used across foldertree.
package utils

import (
	"regexp"
	"strings"
)

// Ignore file constants used across the project.
const (
	// GitIgnoreFileName is the name of the project ignore file read at the root.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// CommentPrefix marks ignore file lines that are skipped.
	CommentPrefix = "#"
)

const (
	directorySuffix = "/"
	extensionPrefix = "*."
	wildcardMarker  = "*"
	anyCharacters   = ".*"
)

// PatternKind identifies how an ignore pattern is matched against an entry name.
type PatternKind int

const (
	// PatternKindExact matches an entry name equal to the pattern.
	PatternKindExact PatternKind = iota
	// PatternKindDirectory matches an entry name equal to the pattern without its trailing slash.
	PatternKindDirectory
	// PatternKindExtension matches entry names ending with the suffix after the leading star.
	PatternKindExtension
	// PatternKindWildcard matches entry names against the pattern with every star expanded.
	PatternKindWildcard
)

// String returns a readable name for the pattern kind.
func (kind PatternKind) String() string {
	switch kind {
	case PatternKindDirectory:
		return "directory"
	case PatternKindExtension:
		return "extension"
	case PatternKindWildcard:
		return "wildcard"
	default:
		return "exact"
	}
}

// ClassifyPattern reports the matching shape of an ignore pattern from its surface syntax.
func ClassifyPattern(pattern string) PatternKind {
	switch {
	case strings.HasSuffix(pattern, directorySuffix):
		return PatternKindDirectory
	case strings.HasPrefix(pattern, extensionPrefix):
		return PatternKindExtension
	case strings.Contains(pattern, wildcardMarker):
		return PatternKindWildcard
	default:
		return PatternKindExact
	}
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// MatchesPattern reports whether a bare entry name matches a single ignore pattern.
// Directory patterns do not inspect the entry type: a file named like the directory matches too.
func MatchesPattern(entryName string, pattern string) bool {
	switch ClassifyPattern(pattern) {
	case PatternKindDirectory:
		return entryName == strings.TrimSuffix(pattern, directorySuffix)
	case PatternKindExtension:
		return strings.HasSuffix(entryName, strings.TrimPrefix(pattern, wildcardMarker))
	case PatternKindWildcard:
		return wildcardExpression(pattern).MatchString(entryName)
	default:
		return entryName == pattern
	}
}

// ShouldIgnoreName reports whether an entry name matches at least one ignore pattern.
// Patterns are applied to the last path segment only, so a pattern containing a
// separator such as "src/foo" never matches.
func ShouldIgnoreName(entryName string, ignorePatterns []string) bool {
	for _, patternValue := range ignorePatterns {
		if MatchesPattern(entryName, patternValue) {
			return true
		}
	}
	return false
}

// wildcardExpression anchors the pattern and expands each star to any run of characters.
// Everything between stars is matched literally.
func wildcardExpression(pattern string) *regexp.Regexp {
	literalSegments := strings.Split(pattern, wildcardMarker)
	for segmentIndex, literalSegment := range literalSegments {
		literalSegments[segmentIndex] = regexp.QuoteMeta(literalSegment)
	}
	return regexp.MustCompile("^" + strings.Join(literalSegments, anyCharacters) + "$")
}
