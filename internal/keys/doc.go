// Package keys normalizes textual key specifications into a single
// canonical form.
//
// Shortcut definitions arrive from many tools in many notations:
//
//   - Plus-joined: "Ctrl+Shift+A", "cmd+shift+a"
//   - Hyphen-joined control style: "C-M-a", "C-b"
//   - Space-joined sequences: "C-b c", "g g"
//   - Symbolic glyphs: "⌘⇧A", "^X"
//   - Free-text aliases: "Command+Option+Left", "control+return"
//
// Normalize reduces all of them to one canonical string so that two
// surface forms of the same logical shortcut always compare equal. The
// canonical string is the sole basis for collision detection downstream;
// nothing else in the system re-parses raw key text.
//
// Normalize is pure and total. Unrecognized tokens pass through
// capitalized rather than failing, so malformed input still produces a
// stable canonical form.
package keys
