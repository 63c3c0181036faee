// Package identifier implements the name-mangling rules shared by the three
// code-generating emitters: uppercasing/lowercasing of alphanumerics for
// token and field names, and the auto-naming scheme for unnamed groups.
package identifier

import (
	"fmt"
	"strings"
	"unicode"
)

// Upper returns the uppercased alphanumeric characters of name, matching the
// original generator's print_strtoupper: non-alphanumeric runes are dropped,
// not substituted.
func Upper(name string) string {
	return filterMap(name, unicode.ToUpper)
}

// Lower returns the lowercased alphanumeric characters of name, matching the
// original generator's print_strtolower.
func Lower(name string) string {
	return filterMap(name, unicode.ToLower)
}

func filterMap(name string, conv func(rune) rune) string {
	var b strings.Builder

	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(conv(r))
		}
	}

	return b.String()
}

// GroupKind distinguishes the two auto-naming counters a command keeps.
type GroupKind int

const (
	// OptionalGroup counts towards "optgrp" names.
	OptionalGroup GroupKind = iota
	// RequiredGroup counts towards "reqgrp" names.
	RequiredGroup
)

// AutoGroupName builds the cmd<I>-{req,opt}grp<K> name for an unnamed group,
// where cmdIndex is the 1-based command index and count is the 1-based
// per-kind counter within that command (i.e. the count *after* this group
// has been registered).
func AutoGroupName(cmdIndex int, kind GroupKind, count int) string {
	tag := "optgrp"
	if kind == RequiredGroup {
		tag = "reqgrp"
	}

	return fmt.Sprintf("cmd%d-%s%d", cmdIndex, tag, count)
}
