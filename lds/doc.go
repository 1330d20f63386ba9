// Package lds renders a composed placement into a GNU-ld SECTIONS script,
// the textual artifact the target toolchain's linking stage consumes.
//
// Content-backed regions become output sections with input-section matching
// (and KEEP/NOLOAD/ALIGN as declared); reserved regions become cursor
// advances. Boundary symbols are assigned inside the script so the linking
// stage resolves the final extents of regions whose content comes from
// separate compilation units.
//
// Encoding is deterministic: equal placements render byte-identical scripts.
package lds
