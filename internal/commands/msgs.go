package commands

// Command descriptions
const (
	MsgRootShort = "Run mod installation wizards from the terminal"
	MsgRootLong  = `modwiz reads the installer shipped with a mod (fomod/ModuleConfig.xml),
walks its install steps and prints the files to install and where to put
them. It never copies anything: the manifest is for you or your mod manager
to apply.`

	MsgInspectShort   = "Describe a mod's installer"
	MsgInspectLong    = "Inspect decodes the installer of the mod at <mod-dir> and prints its steps, groups, plugins and files."
	MsgInspectExample = `  modwiz inspect ~/mods/SkyUI
  modwiz inspect ~/mods/SkyUI | less`

	MsgPlanShort   = "Compute the install manifest without prompting"
	MsgPlanLong    = "Plan walks the installer using the choices file, or each step's default choices, and prints the install manifest."
	MsgPlanExample = `  modwiz plan ~/mods/SkyUI
  modwiz plan ~/mods/SkyUI --choices skyui.toml --format json
  modwiz plan ~/mods/SkyUI --target ~/Games/Skyrim/Data --game-version 1.6.640`

	MsgRunShort   = "Run the installer wizard interactively"
	MsgRunLong    = "Run shows each visible install step, lets you pick plugins, and prints the install manifest at the end."
	MsgRunExample = `  modwiz run ~/mods/SkyUI
  modwiz run ~/mods/SkyUI --save skyui.toml`

	MsgGenConfigShort = "Print or write the default configuration file"
	MsgVersionShort   = "Print version information"
	MsgManShort       = "Generate the man page"
)

// Flag descriptions
const (
	MsgFlagVerbose          = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig           = "Config file (default is $XDG_CONFIG_HOME/modwiz/config.toml)"
	MsgFlagGameVersion      = "Game version for version conditions"
	MsgFlagInstallerVersion = "Installer version for version conditions"
	MsgFlagForce            = "Install even when the mod's prerequisites are not met"
	MsgFlagTarget           = "Game data directory file conditions are checked against"
	MsgFlagFormat           = "Manifest format: text, json or yaml"
	MsgFlagChoices          = "Choices file (.toml, .yaml or .yml)"
	MsgFlagStrict           = "Fail when a choice breaks a group's selection rule"
	MsgFlagSave             = "Write the choices made to this file (.toml, .yaml or .yml)"
	MsgFlagWrite            = "Write the config file instead of printing it"
)

// Status messages
const (
	MsgNoTarget          = "No game data directory configured, file conditions are checked against the current directory"
	MsgPrerequisites     = "prerequisites of %q are not met: %s"
	MsgRuleWarning       = "Choices for step %q break group rules"
	MsgChoicesSaved      = "Choices saved to %s\n"
	MsgConfigWritten     = "Config written to %s\n"
	MsgConfigExists      = "config file %s already exists"
	MsgNonInteractive    = "run needs an interactive terminal, use plan with a choices file instead"
	MsgCancelled         = "installation cancelled"
	MsgNoStepsInstalling = "This mod has no install steps."
	MsgVersionFormat     = "modwiz version %s\n  commit: %s\n  built:  %s\n"
)

// Wizard prompt labels
const (
	MsgActionNext   = "Next"
	MsgActionFinish = "Finish"
	MsgActionBack   = "Back"
	MsgActionCancel = "Cancel"
	MsgNoneOption   = "(none)"
	MsgStepTitle    = "Step %d: %s"
	MsgAllSelected  = "%s: every plugin is installed"
)
