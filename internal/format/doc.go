// Package format renders a syntax tree back into canonical ISL text.
//
// The output is deterministic: member order is preserved, indentation is
// normalized, and every composite subexpression is parenthesized so the
// rendering survives a reparse structurally unchanged. Comments are not
// preserved; the printer works from the tree alone.
package format
