// Package props parses, merges, and writes properties-style files.
//
// A properties file is a sequence of `key=value` or `key:value` lines. Lines
// starting with '#' are comments and attach to the next property line. A
// trailing backslash continues a logical line onto the next physical line.
//
// The package works on byte streams only:
//   - Parse reads a stream into an ordered Properties set
//   - Merge combines a base set with an override set
//   - Properties.WriteTo renders a set back to text
//
// Values are never decomposed or unescaped. Each entry keeps its raw logical
// line so that writing it back reproduces the original formatting.
package props
