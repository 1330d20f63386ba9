package lds

import (
	"fmt"
	"strings"

	"github.com/embarkos/mem-layout/composer"
	"github.com/embarkos/mem-layout/region"
)

// Encode renders the placement as a GNU-ld SECTIONS script.
func Encode(p *composer.Placement) string {
	var b strings.Builder

	b.WriteString("/* Generated by mem-layout; do not edit. */\n\n")
	b.WriteString("SECTIONS\n{\n")
	fmt.Fprintf(&b, "\t. = %#x;\n", p.Origin)

	for _, placed := range p.Regions {
		b.WriteByte('\n')
		if placed.Region.Reserved() {
			writeReserved(&b, placed.Region)
		} else {
			writeSection(&b, placed.Region)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// writeSection emits one output section with its boundary symbols and
// input-section matching.
func writeSection(b *strings.Builder, r region.Region) {
	fmt.Fprintf(b, "\t%s ", sectionName(r))
	if r.Kind == region.ZeroFill {
		b.WriteString("(NOLOAD) ")
	}
	b.WriteString(":")
	if r.Align != 0 {
		fmt.Fprintf(b, " ALIGN(%d)", r.Align)
	}
	b.WriteString(" {\n")

	fmt.Fprintf(b, "\t\t%s = .;\n", r.StartSymbol())
	for _, pat := range r.Match {
		in := "*(" + pat + ")"
		if pat == "COMMON" {
			in = "*(COMMON)"
		}
		if r.Keep {
			fmt.Fprintf(b, "\t\tKEEP(%s)\n", in)
		} else {
			fmt.Fprintf(b, "\t\t%s\n", in)
		}
	}
	if r.EndAlign != 0 {
		fmt.Fprintf(b, "\t\t. = ALIGN(%d);\n", r.EndAlign)
	}
	fmt.Fprintf(b, "\t\t%s = .;\n", r.EndSymbol())

	b.WriteString("\t}\n")
}

// writeReserved emits a reserved-space region as a cursor advance, the way
// stack and arena space is carved out without any backing content.
func writeReserved(b *strings.Builder, r region.Region) {
	if r.Align != 0 {
		fmt.Fprintf(b, "\t. = ALIGN(%d);\n", r.Align)
	}
	fmt.Fprintf(b, "\t%s = .;\n", r.StartSymbol())
	fmt.Fprintf(b, "\t. += %#x;\n", r.Reserve)
	if r.EndAlign != 0 {
		fmt.Fprintf(b, "\t. = ALIGN(%d);\n", r.EndAlign)
	}
	fmt.Fprintf(b, "\t%s = .;\n", r.EndSymbol())
}

// sectionName derives the output section name from the first input-section
// pattern, falling back to the region name.
func sectionName(r region.Region) string {
	for _, pat := range r.Match {
		if pat == "COMMON" {
			continue
		}
		return strings.TrimRight(pat, "*")
	}
	return "." + r.Name
}
