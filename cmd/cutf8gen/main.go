// Command cutf8gen generates cutf8.CUtf8 literal declarations from a manifest and checks files for valid C strings.
//
// Typical use is from a go:generate directive:
//
//	//go:generate go run github.com/tetratelabs/cutf8/cmd/cutf8gen generate -m literals.yaml -o literals_gen.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tetratelabs/cutf8"
	"github.com/tetratelabs/cutf8/internal/literalgen"
)

const envPrefix = "CUTF8GEN"

func main() {
	doMain(os.Args[1:], os.Stdout, os.Stderr, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(args []string, stdOut, stdErr io.Writer, exit func(code int)) {
	logger := log.NewWithOptions(stdErr, log.Options{Prefix: "cutf8gen"})

	root := newRootCmd(logger)
	root.SetArgs(args)
	root.SetOut(stdOut)
	root.SetErr(stdErr)

	if err := root.Execute(); err != nil {
		logger.Error(err)
		exit(1)
	}
	exit(0)
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "cutf8gen",
		Short:         "Generates and checks nul-terminated UTF-8 strings",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(newGenerateCmd(logger), newCheckCmd(logger))
	return root
}

// manifest is the document read by the generate command. Any field can also be set by a flag or a CUTF8GEN_
// environment variable, for example CUTF8GEN_IMPORT_PATH.
type manifest struct {
	Package    string             `mapstructure:"package"`
	ImportPath string             `mapstructure:"import_path"`
	Output     string             `mapstructure:"output"`
	Tags       string             `mapstructure:"tags"`
	Generator  string             `mapstructure:"generator"`
	Literals   []literalgen.Entry `mapstructure:"literals"`
}

func newGenerateCmd(logger *log.Logger) *cobra.Command {
	v := viper.New()
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Writes Go declarations for the literals in a manifest",
		Long: `Writes Go declarations for the literals in a manifest.

The manifest may be YAML, TOML or JSON, chosen by file extension:

  package: symbols
  literals:
    - name: Start
      value: _start
      doc: Start is the default entry point.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := loadManifest(v, manifestPath)
			if err != nil {
				return err
			}
			logger.Debug("loaded manifest", "path", manifestPath, "literals", len(m.Literals))

			c := literalgen.NewConfig().
				WithPackage(m.Package).
				WithImportPath(m.ImportPath).
				WithBuildTags(m.Tags).
				WithGenerator(m.Generator)
			src, err := literalgen.Generate(c, m.Literals)
			if err != nil {
				return fmt.Errorf("%s: %w", manifestPath, err)
			}

			if m.Output == "" || m.Output == "-" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err = os.WriteFile(m.Output, src, 0o644); err != nil {
				return err
			}
			logger.Info("wrote literals", "path", m.Output, "count", len(m.Literals))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&manifestPath, "manifest", "m", "", "path to the literal manifest (.yaml, .toml or .json)")
	flags.StringP("output", "o", "", "file to write, or - for stdout")
	flags.String("package", "", "package name of the generated file (default \"main\")")
	flags.String("import-path", "", "import path of the cutf8 package")
	flags.String("tags", "", "build constraint expression to add to the generated file")
	flags.String("generator", "", "tool named in the \"Code generated\" header (default \"cutf8gen\")")
	_ = cmd.MarkFlagRequired("manifest")

	// Flags are bound under manifest keys so a set flag overrides the file.
	for key, name := range map[string]string{
		"output":      "output",
		"package":     "package",
		"import_path": "import-path",
		"tags":        "tags",
		"generator":   "generator",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
	return cmd
}

func loadManifest(v *viper.Viper, path string) (*manifest, error) {
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	var m manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("error decoding manifest %s: %w", path, err)
	}
	return &m, nil
}

func newCheckCmd(logger *log.Logger) *cobra.Command {
	var content bool
	var inline []string

	cmd := &cobra.Command{
		Use:   "check [flags] [file...]",
		Short: "Reports whether each input is a valid nul-terminated UTF-8 string",
		Long: `Reports whether each input is a valid nul-terminated UTF-8 string.

By default a file must end with exactly one nul byte. With --content, the file holds
the content only and must contain no nul byte at all.`,
		RunE: func(cmd *cobra.Command, paths []string) error {
			if len(paths) == 0 && len(inline) == 0 {
				return fmt.Errorf("nothing to check: pass a file or --string")
			}

			var failed int
			report := func(name string, c cutf8.CUtf8, err error) {
				if err != nil {
					failed++
					logger.Error("invalid", "input", name, "err", err)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d bytes)\n", name, c.Len())
			}

			for _, s := range inline {
				c, err := cutf8.New(s)
				report(fmt.Sprintf("%q", s), c, err)
			}
			for _, p := range paths {
				b, err := os.ReadFile(p)
				if err != nil {
					failed++
					logger.Error("unreadable", "input", p, "err", err)
					continue
				}
				logger.Debug("read", "input", p, "bytes", len(b))
				var c cutf8.CUtf8
				if content {
					c, err = cutf8.New(string(b))
				} else {
					c, err = cutf8.FromBytes(b)
				}
				report(p, c, err)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(inline)+len(paths))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&content, "content", false, "files hold content without the trailing nul")
	flags.StringArrayVarP(&inline, "string", "s", nil, "content to check, may be repeated")
	return cmd
}
