package lds

import (
	"strings"
	"testing"

	"github.com/embarkos/mem-layout/composer"
	"github.com/embarkos/mem-layout/region"
)

func TestEncodeGolden(t *testing.T) {
	regions := []region.Region{
		{Name: "start_text", Kind: region.Loaded, Align: 4, Match: []string{".start.text"}, Keep: true},
		{Name: "bss", Kind: region.ZeroFill, Align: 16, EndAlign: 16, Match: []string{".bss*", "COMMON"}},
		{Name: "stack", Kind: region.ZeroFill, Align: 16, Reserve: 0x4000},
	}

	p, err := composer.Compose(0x8000_0000, regions)
	if err != nil {
		t.Fatal(err)
	}

	want := `/* Generated by mem-layout; do not edit. */

SECTIONS
{
	. = 0x80000000;

	.start.text : ALIGN(4) {
		__start_text = .;
		KEEP(*(.start.text))
		__estart_text = .;
	}

	.bss (NOLOAD) : ALIGN(16) {
		__bss = .;
		*(.bss*)
		*(COMMON)
		. = ALIGN(16);
		__ebss = .;
	}

	. = ALIGN(16);
	__stack = .;
	. += 0x4000;
	__estack = .;
}
`

	got := Encode(p)
	if got != want {
		t.Errorf("script mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	p, err := composer.Compose(0x8000_0000, region.BootSet())
	if err != nil {
		t.Fatal(err)
	}

	if Encode(p) != Encode(p) {
		t.Error("encoding the same placement twice should be byte-identical")
	}
}

func TestEncodeBootSet(t *testing.T) {
	p, err := composer.Compose(0x8000_0000, region.BootSet())
	if err != nil {
		t.Fatal(err)
	}

	script := Encode(p)
	for _, want := range []string{
		"KEEP(*(.dtb.rodata))",
		".bss (NOLOAD)",
		"__estack = .;",
		"__arena = .;",
		"__earena = .;",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}

	// ZeroFill regions never contribute image bytes.
	if strings.Contains(script, ".stack :") {
		t.Error("reserved stack must not become an output section")
	}
}

func TestSectionNameFallback(t *testing.T) {
	r := region.Region{Name: "blob", Kind: region.Loaded}
	if got := sectionName(r); got != ".blob" {
		t.Errorf("fallback section name: got %q, want %q", got, ".blob")
	}

	r = region.Region{Name: "bss", Match: []string{"COMMON", ".bss*"}}
	if got := sectionName(r); got != ".bss" {
		t.Errorf("section name: got %q, want %q", got, ".bss")
	}
}
