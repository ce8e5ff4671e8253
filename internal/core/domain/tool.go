package domain

import "time"

// DefaultToolTimeout bounds a single external tool invocation.
const DefaultToolTimeout = 30 * time.Second

// ToolInvocation describes one run of an external text transform.
// The content is written to a temporary file named by its hash and the file
// path is appended as the last argument of Command.
type ToolInvocation struct {
	// Command is the argv prefix, e.g. ["node", "vendor/less/bin/lessc"].
	Command []string
	// Input is the content handed to the tool.
	Input string
	// InputExt is the extension of the temporary input file, without dot.
	InputExt string
	// OutputExt, when set, names a sibling output file the tool writes instead
	// of standard output (input extension replaced by OutputExt).
	OutputExt string
	// Env holds extra "KEY=VALUE" entries. PATH entries are prepended to the process PATH.
	Env []string
	// Timeout overrides DefaultToolTimeout when positive.
	Timeout time.Duration
	// Dir is the working directory of the tool. Empty means the current one.
	Dir string
}

// ToolOutput is what an external tool produced.
type ToolOutput struct {
	Stdout string
	Stderr string
	// File is the content of the sibling output file, if one was requested and written.
	File string
}

// ToolSpec configures how a transform method invokes its binary.
type ToolSpec struct {
	Command []string `yaml:"command"`
	Env     []string `yaml:"env"`
	// Timeout is a Go duration string such as "45s".
	Timeout string `yaml:"timeout"`
}
