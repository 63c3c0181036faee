package docoptgen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reeflective/docoptgen/internal/gen/grammar"
	"github.com/reeflective/docoptgen/internal/gen/header"
	"github.com/reeflective/docoptgen/internal/gen/scanner"
)

// ErrOutputConflict indicates that one of the three output files already
// exists, or otherwise could not be exclusively created (spec.md §7's
// OutputConflict, §9's "must not clobber pre-existing files").
var ErrOutputConflict = errors.New("output file already exists")

// Driver is component G of spec.md §4.G: it validates a built Ctx, then
// opens the three output files with exclusive-create semantics and drives
// the header, scanner, and grammar emitters over them in turn.
type Driver struct {
	ctx      *Ctx
	basename string
	outDir   string
}

// NewDriver returns a Driver that validates ctx and, on Emit, writes
// <basename>.h, <basename>.l and <basename>.y into outDir.
func NewDriver(ctx *Ctx, basename, outDir string) *Driver {
	return &Driver{ctx: ctx, basename: basename, outDir: outDir}
}

// Emit validates the driver's Ctx and, if valid, creates and writes all
// three output artifacts. in supplies the original usage text the header
// emitter re-reads verbatim for its cli_usage literal (spec.md §4.G: "input
// file handles are held open through grammar emission"); pass nil for
// interactive mode, where no usage file exists to re-read.
//
// If validation fails, or any output file cannot be exclusively created, no
// artifact is left behind: files already created during this call are
// removed before Emit returns.
func (d *Driver) Emit(in io.Reader) (err error) {
	if verr := d.ctx.inner.Validate(); verr != nil {
		return verr
	}

	var created []string

	defer func() {
		if err != nil {
			for _, path := range created {
				os.Remove(path)
			}
		}
	}()

	headerFile, headerPath, err := d.createExclusive(".h")
	if err != nil {
		return err
	}

	created = append(created, headerPath)
	defer headerFile.Close()

	scannerFile, scannerPath, err := d.createExclusive(".l")
	if err != nil {
		return err
	}

	created = append(created, scannerPath)
	defer scannerFile.Close()

	grammarFile, grammarPath, err := d.createExclusive(".y")
	if err != nil {
		return err
	}

	created = append(created, grammarPath)
	defer grammarFile.Close()

	if err = d.emitTo(headerFile, scannerFile, grammarFile, in); err != nil {
		return err
	}

	return nil
}

// EmitTo validates the driver's Ctx and writes the three artifacts directly
// to hw/sw/gw, without creating or touching any file on disk. Interactive
// mode (spec.md §6.2's `prog -i`) uses this to emit straight to the
// terminal instead of basename.{h,l,y}.
func (d *Driver) EmitTo(hw, sw, gw io.Writer, in io.Reader) error {
	if err := d.ctx.inner.Validate(); err != nil {
		return err
	}

	return d.emitTo(hw, sw, gw, in)
}

func (d *Driver) emitTo(hw, sw, gw io.Writer, in io.Reader) error {
	if err := header.Emit(hw, d.ctx.inner, d.basename, in); err != nil {
		return err
	}

	if err := scanner.Emit(sw, d.ctx.inner, d.basename); err != nil {
		return err
	}

	return grammar.Emit(gw, d.ctx.inner, d.basename)
}

func (d *Driver) createExclusive(suffix string) (*os.File, string, error) {
	path := filepath.Join(d.outDir, d.basename+suffix)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, "", fmt.Errorf("%w: %s", ErrOutputConflict, path)
		}

		return nil, "", fmt.Errorf("docoptgen: creating %s: %w", path, err)
	}

	return f, path, nil
}
