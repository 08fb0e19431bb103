package nedots

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Capture and apply dotfiles and system packages"
	MsgAddShort        = "Add the latest changes of tracked files to the repository"
	MsgInstallShort    = "Install packages and configs"
	MsgConfigsShort    = "Install dotfiles"
	MsgPkgsShort       = "Install packages"
	MsgFlatpaksShort   = "Install flatpaks"
	MsgWMShort         = "Install a window manager"
	MsgListShort       = "List tracked files and directories"
	MsgCheckShort      = "Check that required tools and files are present"
	MsgGenConfigShort  = "Print the default settings as TOML"
	MsgCompletionShort = "Generate shell completion script"
	MsgCompletionLong  = "Generate a completion script for bash, zsh, fish or powershell and print it to stdout."
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgCaptureTitle    = "Capturing into %s"
	MsgConfigsTitle    = "Applying configs from %s"
	MsgFlatpaksInert   = "Flatpak remotes are listed only; install them with flatpak."
	MsgNoFlatpaks      = "No flatpak remotes declared."
	MsgDryRunNotice    = "DRY RUN MODE - No changes were made"
	MsgConfigWritten   = "Wrote default settings to %s\n"
	MsgVersionFormat   = "nedots %s (commit %s, built %s)\n"
	MsgChecksFailed    = "some checks failed"
	MsgNoEntries       = "No tracked entries."
	MsgPackagesSkipped = "Package list %s is empty, nothing to install."
	MsgCommitted       = "Committed captured changes in %s"
	MsgNothingToCommit = "No changes to commit in %s"
	MsgPushed          = "Pushed %s"

	// Error messages
	MsgErrConfigExists = "settings file %s already exists"
	MsgErrWriteConfig  = "failed to write settings file: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagPath      = "Use DIR as the managed repository root"
	MsgFlagFailFast  = "Stop at the first entry that fails to copy"
	MsgFlagConfig    = "Read settings from FILE instead of the user settings file"
	MsgFlagDistro    = "Install packages for this distro"
	MsgFlagAssumeYes = "Answer yes to the package manager's prompts"
	MsgFlagExtras    = "Install extra packages - these typically take longer to install, or need repositories set up first"
	MsgFlagOutput    = "Output format: text, json or yaml"
	MsgFlagWrite     = "Write the settings file instead of printing it"
	MsgFlagCommit    = "Commit the captured changes to the repository's git history"
	MsgFlagPush      = "Commit and push the captured changes"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
