// Package config holds the small functional-options surface cmd/docoptgen
// applies before building a driver, in the teacher's opts/OptFunc idiom
// (root-level opts.go: defOpts().apply(optFuncs...)).
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultBasename = "cli"
)

// Opts is the resolved configuration cmd/docoptgen feeds to the driver.
type Opts struct {
	// Basename names the emitted files (<Basename>.h/.l/.y) and the C
	// struct/guard macro. Must be a valid identifier stem.
	Basename string `validate:"required,alphanum"`
	// OutDir is the directory emitted files are created in.
	OutDir string `validate:"required,dir"`
	// Interactive selects stdin-driven usage-block entry over file mode.
	Interactive bool
}

// OptFunc mutates an in-progress Opts, following the teacher's functional-
// options convention (see root opts.go's OptFunc type).
type OptFunc func(*Opts)

// WithBasename overrides the default basename ("cli").
func WithBasename(name string) OptFunc {
	return func(o *Opts) { o.Basename = name }
}

// WithOutDir overrides the output directory (default: the dir passed to New).
func WithOutDir(dir string) OptFunc {
	return func(o *Opts) { o.OutDir = dir }
}

// WithInteractive switches cmd/docoptgen into stdin-driven interactive mode.
func WithInteractive(interactive bool) OptFunc {
	return func(o *Opts) { o.Interactive = interactive }
}

// defOpts returns the zero-config defaults, mirroring the teacher's defOpts.
func defOpts() Opts {
	return Opts{
		Basename: defaultBasename,
		OutDir:   ".",
	}
}

// New builds an Opts from defaults, an optional ".docoptgen.yaml" sidecar
// found in dir, and finally the given functional options (highest
// precedence), then validates the result with go-playground/validator —
// the same library the teacher wraps for flag-tag validation
// (internal/validation).
func New(dir string, optFuncs ...OptFunc) (Opts, error) {
	out := defOpts()
	out.OutDir = dir

	if err := loadSidecar(dir, &out); err != nil {
		return Opts{}, err
	}

	for _, optFunc := range optFuncs {
		optFunc(&out)
	}

	if err := validator.New().Struct(out); err != nil {
		return Opts{}, fmt.Errorf("config: %w", err)
	}

	return out, nil
}

// sidecarFile is a partial Opts read from a ".docoptgen.yaml" file sitting
// next to the input usage file, for defaults that are tedious to repeat on
// every invocation (basename, out-dir).
type sidecarFile struct {
	Basename string `yaml:"basename"`
	OutDir   string `yaml:"outDir"`
}

func loadSidecar(dir string, out *Opts) error {
	path := dir + "/.docoptgen.yaml"

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	var side sidecarFile
	if err := yaml.Unmarshal(data, &side); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if side.Basename != "" {
		out.Basename = side.Basename
	}

	if side.OutDir != "" {
		out.OutDir = side.OutDir
	}

	return nil
}
