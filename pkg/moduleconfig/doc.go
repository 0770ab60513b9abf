// Package moduleconfig decodes the XML installer format shipped in a
// module's fomod directory.
//
// ModuleConfig.xml describes the install steps, plugin groups, plugins,
// type patterns and conditional installs and decodes into an
// installer.Config. The optional info.xml carries descriptive metadata and
// decodes into Info. Both files are located case-insensitively, and both
// may be UTF-8 (with or without a byte order mark) or UTF-16.
//
// Element names follow the format exactly:
//
//	config
//	├── moduleName, moduleImage@path
//	├── moduleDependencies@operator      prerequisites
//	├── requiredInstallFiles             file, folder
//	├── installSteps@order
//	│   └── installStep@name
//	│       ├── visible@operator
//	│       └── optionalFileGroups@order
//	│           └── group@name@type
//	│               └── plugins@order
//	│                   └── plugin@name
//	│                       ├── description, image@path
//	│                       ├── files, conditionFlags/flag@name
//	│                       └── typeDescriptor
//	└── conditionalFileInstalls/patterns/pattern
package moduleconfig
