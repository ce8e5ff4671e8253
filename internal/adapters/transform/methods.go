package transform

// Kind is the pipeline stage a method serves.
type Kind int

const (
	// KindPreprocessor converts a source language to the native asset language.
	KindPreprocessor Kind = iota
	// KindMinifier compacts native asset content.
	KindMinifier
)

// Method describes a built-in transform backed by an external tool.
type Method struct {
	Name string
	Kind Kind
	// Command is the default argv prefix; the interchange file is appended.
	Command []string
	// InputExt is the extension of the interchange file.
	InputExt string
	// OutputExt names a sibling file the tool writes instead of standard output.
	OutputExt string
	// AlertOnStderr appends tool diagnostics to the script output as an alert call.
	AlertOnStderr bool
}

// Builtins returns the methods known to every registry.
func Builtins() []Method {
	return []Method{
		{Name: "less", Kind: KindPreprocessor, Command: []string{"lessc"}, InputExt: "less"},
		{
			Name:          "coffeescript",
			Kind:          KindPreprocessor,
			Command:       []string{"coffee", "-c"},
			InputExt:      "coffee",
			OutputExt:     "js",
			AlertOnStderr: true,
		},
		{Name: "kaffeine", Kind: KindPreprocessor, Command: []string{"kaffeine"}, InputExt: "k"},
		{Name: "cssmin", Kind: KindMinifier, Command: []string{"cssmin"}, InputExt: "css"},
		{Name: "jsmin", Kind: KindMinifier, Command: []string{"jsmin"}, InputExt: "js"},
		{Name: "uglifyjs", Kind: KindMinifier, Command: []string{"uglifyjs"}, InputExt: "js"},
	}
}
