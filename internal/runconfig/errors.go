package runconfig

import "errors"

var (
	// ErrNoConfigFile means none of the recognized config filenames
	// exist in the search directory, and no Cargo.toml metadata table
	// applies either.
	ErrNoConfigFile = errors.New("runconfig: no config file found")

	// ErrRONUnsupported is returned for a runcc.ron file: the RON
	// format has no maintained Go decoder in wide use, unlike the
	// JSON/YAML/TOML formats this package otherwise supports.
	ErrRONUnsupported = errors.New("runconfig: .ron config files are not supported")

	// ErrMissingCommands means a config document has no "commands" key.
	ErrMissingCommands = errors.New("runconfig: config is missing a \"commands\" field")

	// ErrEmptyCommand means a command entry evaluated to an empty
	// program name (e.g. an empty argv-style list).
	ErrEmptyCommand = errors.New("runconfig: command has no program")

	// ErrInvalidCommandShape means a "commands" entry was not a
	// string, a list of strings, or a command object.
	ErrInvalidCommandShape = errors.New("runconfig: invalid command entry")

	// ErrInvalidKillBehavior means a kill-policy value didn't match any
	// of None, WhenAnyExited, WhenAnySucceeded, WhenAnyFailed, or a
	// bare integer status code.
	ErrInvalidKillBehavior = errors.New("runconfig: invalid kill behavior")

	// ErrCargoMetadataNotTable means Cargo.toml parsed but its
	// top-level value was not a TOML table.
	ErrCargoMetadataNotTable = errors.New("runconfig: Cargo.toml is not a table")

	// ErrCargoMetadataDuplicate means both package.metadata.runcc and
	// workspace.metadata.runcc are present in the same Cargo.toml; only
	// one is allowed.
	ErrCargoMetadataDuplicate = errors.New("runconfig: both package.metadata.runcc and workspace.metadata.runcc are present")
)
