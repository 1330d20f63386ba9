// Package symtab implements the boundary-symbol contract between a composed
// layout and the startup code that reads it.
//
// Every region publishes two addresses: an inclusive start and an exclusive
// end, so end minus start is the region extent. Symbols are addresses only,
// never guaranteed-initialized memory contents. A table is built once by the
// composer and is read-only afterward.
package symtab
