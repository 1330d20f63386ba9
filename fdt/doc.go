// Package fdt probes flattened devicetree blobs.
//
// The layout composer only needs to size and sanity-check the blob embedded
// in the image's devicetree region: header magic, total size, version and
// the memory reservation block. Interpreting nodes and properties is the
// startup code's business and out of scope here.
package fdt
