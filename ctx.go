package docoptgen

import (
	"io"

	"github.com/reeflective/docoptgen/internal/ir"
	"github.com/reeflective/docoptgen/internal/usage"
)

// Kind and Flags re-export internal/ir's build-event vocabulary so callers
// driving a Ctx directly never need to import an internal package.
type (
	Kind  = ir.Kind
	Flags = ir.Flags
)

// Kind values, mirroring internal/ir.
const (
	Flag     = ir.Flag
	Str      = ir.Str
	ReqGroup = ir.ReqGroup
	OptGroup = ir.OptGroup
)

// Flags bits, mirroring internal/ir.
const (
	Separator = ir.Separator
	Array     = ir.Array
	HasValue  = ir.HasValue
)

// Sentinel errors of the build-time/validation error taxonomy (spec.md §7),
// re-exported for callers using errors.Is/errors.As.
var (
	ErrDuplicateInCommand = ir.ErrDuplicateInCommand
	ErrKindConflict       = ir.ErrKindConflict
	ErrEmptySpec          = ir.ErrEmptySpec
	ErrUnnamedArg         = ir.ErrUnnamedArg
	ErrNoOpenCommand      = ir.ErrNoOpenCommand
	ErrNoOpenGroup        = ir.ErrNoOpenGroup
	ErrNoSibling          = ir.ErrNoSibling
)

// Ctx is the build-event target of spec.md §6.1: NewCmd/PushArg/PopGroup/
// SetFlag incrementally build the argument forest that Driver later
// validates and emits from.
type Ctx struct {
	inner *ir.Ctx
}

// NewCtx returns an empty, ready-to-build Ctx.
func NewCtx() *Ctx {
	return &Ctx{inner: ir.NewCtx()}
}

// Reset drops every command and dedup entry (spec.md testable property 7:
// idempotent teardown, safe to call on an already-empty Ctx).
func (c *Ctx) Reset() {
	c.inner.Reset()
}

// NewCmd opens a new command alternative.
func (c *Ctx) NewCmd() {
	c.inner.NewCmd()
}

// PushArg appends a new Arg under the innermost open group of the current
// command, or at that command's top level if no group is open.
func (c *Ctx) PushArg(kind Kind, flags Flags, name string) error {
	_, err := c.inner.PushArg(kind, flags, name)

	return err
}

// PopGroup closes the innermost open group of the current command.
func (c *Ctx) PopGroup() error {
	return c.inner.PopGroup()
}

// SetFlag ORs flag onto the most recently appended sibling at the current
// nesting level of the current command.
func (c *Ctx) SetFlag(flag Flags) error {
	return c.inner.SetFlag(flag)
}

// FromUsage drives the internal/usage reference front end (SPEC_FULL.md
// §11) over r, a "Usage:" block, populating the Ctx with one command per
// pattern alternative it describes. This is the on_newline/on_parsed/
// on_error sequence of spec.md §6.1, collapsed into a single call for the
// non-interactive case.
func (c *Ctx) FromUsage(r io.Reader) error {
	return usage.Build(c.inner, r)
}
