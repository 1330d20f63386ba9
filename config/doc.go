// Package config loads layout descriptions from YAML build configuration.
//
// One file describes the image origin and one or more named layout variants,
// each an ordered region list. Variants exist because the same kernel is
// built for targets with and without an embedded devicetree blob; they are
// alternative configurations of the same descriptor schema, not different
// systems.
//
// Decoding is strict: unknown fields, negative sizes and malformed
// alignments are configuration errors reported with the offending region.
package config
