package literalgen

// DefaultImportPath is the import path of the package generated code refers to.
const DefaultImportPath = "github.com/tetratelabs/cutf8"

// Config controls the file Generate writes, with the default implementation as NewConfig.
type Config struct {
	packageName string
	importPath  string
	generator   string
	buildTags   string
}

// defaultConfig helps avoid copy/pasting the wrong defaults.
var defaultConfig = &Config{
	packageName: "main",
	importPath:  DefaultImportPath,
	generator:   "cutf8gen",
}

// NewConfig returns a Config writing package "main" and naming cutf8gen as the generator.
func NewConfig() *Config {
	return defaultConfig.clone()
}

// clone ensures all fields are copied even if empty.
func (c *Config) clone() *Config {
	return &Config{
		packageName: c.packageName,
		importPath:  c.importPath,
		generator:   c.generator,
		buildTags:   c.buildTags,
	}
}

// WithPackage sets the package clause of the generated file. Defaults to "main" if empty.
func (c *Config) WithPackage(name string) *Config {
	if name == "" {
		name = defaultConfig.packageName
	}
	ret := c.clone()
	ret.packageName = name
	return ret
}

// WithImportPath overrides DefaultImportPath, for example when the module is vendored under another path.
func (c *Config) WithImportPath(path string) *Config {
	if path == "" {
		path = DefaultImportPath
	}
	ret := c.clone()
	ret.importPath = path
	return ret
}

// WithGenerator sets the tool named in the "Code generated ... DO NOT EDIT." header.
func (c *Config) WithGenerator(name string) *Config {
	if name == "" {
		name = defaultConfig.generator
	}
	ret := c.clone()
	ret.generator = name
	return ret
}

// WithBuildTags adds a //go:build constraint, such as "linux && cgo". Empty means none.
//
// See https://pkg.go.dev/cmd/go#hdr-Build_constraints
func (c *Config) WithBuildTags(expr string) *Config {
	ret := c.clone()
	ret.buildTags = expr
	return ret
}
