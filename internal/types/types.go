// Package types defines the data structures shared across foldertree packages.
package types

const (
	CommandGenerate = "generate"
	CommandInit     = "init"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// TreeResult is the rendered tree of one root directory.
type TreeResult struct {
	RootPath         string
	Tree             string
	RuleCount        int
	IgnoreFileLoaded bool
	OutputPath       string
}
