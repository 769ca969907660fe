// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/foldertree/internal/commands"
	"github.com/temirov/foldertree/internal/config"
	"github.com/temirov/foldertree/internal/output"
	"github.com/temirov/foldertree/internal/services/clipboard"
	"github.com/temirov/foldertree/internal/types"
	"github.com/temirov/foldertree/internal/utils"
)

const (
	exclusionFlagName    = "e"
	noGitignoreFlagName  = "no-gitignore"
	outputFlagName       = "output"
	printFlagName        = "print"
	copyFlagName         = "copy"
	configFlagName       = "config"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = "foldertree version: {{.Version}}\n"
	rootUse              = "foldertree [paths...]"
	rootShortDescription = "write a tree.txt snapshot of a folder layout"
	rootLongDescription  = `foldertree renders the layout of one or more directories as a text tree and
writes it to tree.txt inside each directory.
Build artifacts, dependency folders and version control metadata are skipped
using a built-in ignore list merged with the directory's .gitignore.`
	rootUsageExample = `  # Write ./tree.txt for the current project
  foldertree .

  # Also print the tree and copy it to the clipboard
  foldertree --print --copy ~/src/app

  # Skip an extra folder and ignore .gitignore
  foldertree -e vendor --no-gitignore .`

	generateUse              = types.CommandGenerate + " [paths...]"
	generateAlias            = "g"
	generateShortDescription = "render directory trees (" + generateAlias + ")"
	generateLongDescription  = `Render each directory and write the result to its tree.txt.
Use this subcommand when a directory is named like another subcommand.`

	initUse              = types.CommandInit
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to ./config.yaml, or to
~/.foldertree/config.yaml with --global.`

	exclusionFlagDescription   = "additional ignore pattern (repeatable)"
	noGitignoreFlagDescription = "do not read patterns from .gitignore"
	outputFlagDescription      = "name of the tree file written inside each directory"
	printFlagDescription       = "also print the tree to stdout"
	copyFlagDescription        = "also copy the tree to the clipboard"
	configFlagDescription      = "configuration file path"
	globalFlagDescription      = "write the global configuration"
	forceFlagDescription       = "overwrite an existing configuration file"

	ruleCountWithGitignoreFormat = "Using default patterns + " + utils.GitIgnoreFileName + " (%d rules)"
	ruleCountDefaultsOnlyFormat  = "Using default ignore patterns (%d rules)"
	treeGeneratedFormat          = "%s generated successfully!"
	configurationWrittenFormat   = "Configuration written to %s\n"

	errorNoRootPathMessage      = "no folder selected"
	errorLoadConfigurationFmt   = "load configuration: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorPathMissingFormat      = "path '%s' does not exist"
	errorStatFormat             = "stat failed for '%s': %w"
	errorNotDirectoryFormat     = "path '%s' is not a directory"
	errorGenerateTreeFormat     = "generating tree for %s: %w"
	errorPrintTreesFormat       = "print tree: %w"
	errorMissingCopierMessage   = "clipboard is not configured"
	errorWorkingDirectoryFormat = "unable to determine working directory: %w"
)

// ErrNoRootPath is returned when the command is invoked without a directory.
var ErrNoRootPath = errors.New(errorNoRootPathMessage)

// Dependencies holds the collaborators the commands use.
type Dependencies struct {
	Logger           *zap.Logger
	Stdout           io.Writer
	Copier           clipboard.Copier
	WorkingDirectory string
	HomeDirectory    string
}

// Execute runs the foldertree application.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{
		Logger: logger,
		Stdout: os.Stdout,
		Copier: clipboard.NewService(),
	})
	rootCommand.SetArgs(normalizeToggleFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// generateOptions stores values of the generation flags.
type generateOptions struct {
	exclusionPatterns []string
	disableGitignore  bool
	outputFileName    string
	printTree         bool
	copyTree          bool
}

// generateSettings are the effective generation settings after merging configuration and flags.
type generateSettings struct {
	defaultPatterns   []string
	exclusionPatterns []string
	useGitignore      bool
	outputFileName    string
	printTree         bool
	copyTree          bool
}

// NewRootCommand builds the root Cobra command. Running it with paths generates their trees.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	var configurationPath string
	var rootOptions generateOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Version:      utils.GetApplicationVersion(),
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runGenerate(command, dependencies, configurationPath, rootOptions, arguments)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	addGenerateFlags(rootCommand.Flags(), &rootOptions)
	rootCommand.AddCommand(
		createGenerateCommand(dependencies, &configurationPath),
		createInitCommand(dependencies),
	)
	return rootCommand
}

// addGenerateFlags registers generation flags on the flag set.
func addGenerateFlags(flagSet *pflag.FlagSet, options *generateOptions) {
	flagSet.StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	flagSet.StringVar(&options.outputFileName, outputFlagName, utils.DefaultOutputFileName, outputFlagDescription)
	registerToggleFlag(flagSet, &options.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	registerToggleFlag(flagSet, &options.printTree, printFlagName, false, printFlagDescription)
	registerToggleFlag(flagSet, &options.copyTree, copyFlagName, false, copyFlagDescription)
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand(dependencies Dependencies, configurationPath *string) *cobra.Command {
	var options generateOptions
	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runGenerate(command, dependencies, *configurationPath, options, arguments)
		},
	}
	addGenerateFlags(generateCommand.Flags(), &options)
	return generateCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var globalTarget bool
	var forceOverwrite bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            forceOverwrite,
				WorkingDirectory: dependencies.WorkingDirectory,
				HomeDirectory:    dependencies.HomeDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(stdoutOf(command, dependencies), configurationWrittenFormat, writtenPath)
			return printError
		},
	}
	registerToggleFlag(initCommand.Flags(), &globalTarget, globalFlagName, false, globalFlagDescription)
	registerToggleFlag(initCommand.Flags(), &forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runGenerate renders, writes and optionally prints or copies the trees of the given paths.
func runGenerate(command *cobra.Command, dependencies Dependencies, configurationPath string, options generateOptions, arguments []string) error {
	if len(arguments) == 0 {
		return ErrNoRootPath
	}
	logger := utils.LoggerOrNop(dependencies.Logger)

	workingDirectory := dependencies.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configurationPath,
		HomeDirectory:    dependencies.HomeDirectory,
	})
	if configurationError != nil {
		return fmt.Errorf(errorLoadConfigurationFmt, configurationError)
	}
	settings := resolveGenerateSettings(command.Flags(), options, configuration.Tree)

	validatedPaths, pathValidationError := resolveAndValidatePaths(workingDirectory, arguments)
	if pathValidationError != nil {
		return pathValidationError
	}

	results, generationError := generateTrees(command.Context(), validatedPaths, settings, logger)
	if generationError != nil {
		return generationError
	}

	if settings.printTree {
		if printError := output.PrintTrees(stdoutOf(command, dependencies), results); printError != nil {
			return fmt.Errorf(errorPrintTreesFormat, printError)
		}
	}
	if settings.copyTree {
		if dependencies.Copier == nil {
			return errors.New(errorMissingCopierMessage)
		}
		if copyError := dependencies.Copier.Copy(output.JoinTrees(results)); copyError != nil {
			return copyError
		}
	}
	return nil
}

// resolveGenerateSettings overlays explicitly set flags onto configuration values.
func resolveGenerateSettings(flagSet *pflag.FlagSet, options generateOptions, configuration config.TreeConfiguration) generateSettings {
	settings := generateSettings{
		defaultPatterns:   configuration.Ignore.DefaultPatterns(),
		exclusionPatterns: append(append([]string{}, configuration.Ignore.Exclude...), options.exclusionPatterns...),
		useGitignore:      configuration.Ignore.GitignoreEnabled(),
		outputFileName:    configuration.OutputFileName(),
	}
	if configuration.Print != nil {
		settings.printTree = *configuration.Print
	}
	if configuration.Clipboard != nil {
		settings.copyTree = *configuration.Clipboard
	}
	if flagSet.Changed(noGitignoreFlagName) {
		settings.useGitignore = !options.disableGitignore
	}
	if flagSet.Changed(outputFlagName) {
		settings.outputFileName = options.outputFileName
	}
	if flagSet.Changed(printFlagName) {
		settings.printTree = options.printTree
	}
	if flagSet.Changed(copyFlagName) {
		settings.copyTree = options.copyTree
	}
	return settings
}

// generateTrees renders every root concurrently. Each root is traversed sequentially.
// When one root contains another, roots are processed one at a time in argument order
// so an outer listing never observes a half-written inner tree file.
func generateTrees(ctx context.Context, validatedPaths []types.ValidatedPath, settings generateSettings, logger *zap.Logger) ([]types.TreeResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]types.TreeResult, len(validatedPaths))
	group, groupCtx := errgroup.WithContext(ctx)
	if hasNestedRoots(validatedPaths) {
		group.SetLimit(1)
	}
	for index, validatedPath := range validatedPaths {
		index, validatedPath := index, validatedPath
		group.Go(func() error {
			if contextError := groupCtx.Err(); contextError != nil {
				return contextError
			}
			result, generationError := generateTree(validatedPath.AbsolutePath, settings, logger)
			if generationError != nil {
				return generationError
			}
			results[index] = result
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return results, nil
}

// hasNestedRoots reports whether any root lies inside another root.
func hasNestedRoots(validatedPaths []types.ValidatedPath) bool {
	for outerIndex, outerPath := range validatedPaths {
		for innerIndex, innerPath := range validatedPaths {
			if outerIndex == innerIndex {
				continue
			}
			relativePath, relativePathError := filepath.Rel(outerPath.AbsolutePath, innerPath.AbsolutePath)
			if relativePathError != nil {
				continue
			}
			if relativePath != ".." && !strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
				return true
			}
		}
	}
	return false
}

// generateTree compiles the patterns of one root, renders it and writes its tree file.
func generateTree(rootDirectoryPath string, settings generateSettings, logger *zap.Logger) (types.TreeResult, error) {
	patternSet := config.CompilePatternsWithOptions(rootDirectoryPath, settings.defaultPatterns, settings.exclusionPatterns, settings.useGitignore, logger)
	logger.Info(ruleCountMessage(patternSet), zap.String("root", rootDirectoryPath))

	tree := commands.NewTreeBuilder(patternSet.Patterns, logger).GenerateTree(rootDirectoryPath)

	outputPath, outputPathError := output.TreeFilePath(rootDirectoryPath, settings.outputFileName)
	if outputPathError != nil {
		return types.TreeResult{}, fmt.Errorf(errorGenerateTreeFormat, rootDirectoryPath, outputPathError)
	}
	if writeError := output.WriteTreeFile(outputPath, tree); writeError != nil {
		return types.TreeResult{}, fmt.Errorf(errorGenerateTreeFormat, rootDirectoryPath, writeError)
	}
	logger.Info(fmt.Sprintf(treeGeneratedFormat, settings.outputFileName), zap.String("path", outputPath))

	return types.TreeResult{
		RootPath:         rootDirectoryPath,
		Tree:             tree,
		RuleCount:        patternSet.Len(),
		IgnoreFileLoaded: patternSet.IgnoreFileLoaded,
		OutputPath:       outputPath,
	}, nil
}

// ruleCountMessage describes which pattern sources were applied and how many rules resulted.
func ruleCountMessage(patternSet config.PatternSet) string {
	if patternSet.IgnoreFileLoaded {
		return fmt.Sprintf(ruleCountWithGitignoreFormat, patternSet.Len())
	}
	return fmt.Sprintf(ruleCountDefaultsOnlyFormat, patternSet.Len())
}

// resolveAndValidatePaths converts input paths to absolute directories and removes duplicates.
func resolveAndValidatePaths(workingDirectory string, inputs []string) ([]types.ValidatedPath, error) {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		absolutePath := inputPath
		if !filepath.IsAbs(absolutePath) {
			joinedPath, absolutePathError := filepath.Abs(filepath.Join(workingDirectory, inputPath))
			if absolutePathError != nil {
				return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
			}
			absolutePath = joinedPath
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf(errorNotDirectoryFormat, inputPath)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true})
	}
	return result, nil
}

func stdoutOf(command *cobra.Command, dependencies Dependencies) io.Writer {
	if dependencies.Stdout != nil {
		return dependencies.Stdout
	}
	return command.OutOrStdout()
}
