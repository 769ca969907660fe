package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// Application level messages shared by the entry point and the CLI.
const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes a fatal command error.
	ApplicationExecutionFailedMessage = "foldertree failed"
)

// Configuration file locations.
const (
	// ConfigFileName is the configuration file name looked up locally and globally.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".foldertree"
)

// DefaultOutputFileName is the tree file written inside every rendered root.
const DefaultOutputFileName = "tree.txt"
