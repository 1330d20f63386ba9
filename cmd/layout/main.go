package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	memlayout "github.com/embarkos/mem-layout"
	"github.com/embarkos/mem-layout/composer"
	"github.com/embarkos/mem-layout/config"
	"github.com/embarkos/mem-layout/content"
	"github.com/embarkos/mem-layout/lds"
	"github.com/embarkos/mem-layout/region"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to layout configuration (YAML)")
		variantName = flag.String("variant", "boot", "Layout variant to compose")
		originStr   = flag.String("origin", "", "Origin address override (e.g. 0x80000000)")
		hexFiles    = flag.String("hex", "", "Region content from Intel HEX objects (region=file,region2=file2)")
		dtbFile     = flag.String("dtb", "", "Devicetree blob sizing the dtb region")
		outFile     = flag.String("o", "", "Write the linker script to this file")
		symbols     = flag.Bool("symbols", false, "Print the boundary-symbol table")
		list        = flag.Bool("list", false, "List available layout variants and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose composition logging")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		composer.SetLogger(log)
	}

	if err := run(*configFile, *variantName, *originStr, *hexFiles, *dtbFile,
		*outFile, *symbols, *list, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, variantName, originStr, hexFiles, dtbFile, outFile string,
	symbols, list, interactive bool) error {

	origin, regions, variants, err := selectVariant(configFile, variantName)
	if err != nil {
		return err
	}

	if list {
		for _, v := range variants {
			fmt.Println(v)
		}
		return nil
	}

	if originStr != "" {
		origin, err = strconv.ParseUint(originStr, 0, 64)
		if err != nil {
			return fmt.Errorf("parse origin: %w", err)
		}
	}

	sizers, err := buildSizers(hexFiles, dtbFile)
	if err != nil {
		return err
	}

	opts := make([]composer.Option, len(sizers))
	for i, s := range sizers {
		opts[i] = composer.WithSizer(s)
	}
	placement, err := composer.Compose(origin, regions, opts...)
	if err != nil {
		return err
	}

	if interactive {
		return runInteractive(variantName, placement)
	}

	printMap(placement)
	if symbols {
		fmt.Println()
		printSymbols(placement)
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(lds.Encode(placement)), 0o644); err != nil {
			return fmt.Errorf("write script: %w", err)
		}
		fmt.Printf("\nLinker script written to %s\n", outFile)
	}
	return nil
}

// selectVariant resolves the descriptor list either from a configuration
// file or from the built-in sets.
func selectVariant(configFile, variantName string) (uint64, []region.Region, []string, error) {
	if configFile == "" {
		builtin := map[string][]region.Region{
			"boot":    region.BootSet(),
			"minimal": region.MinimalSet(),
		}
		regions, ok := builtin[variantName]
		if !ok {
			return 0, nil, nil, fmt.Errorf("unknown built-in variant %q (boot, minimal)", variantName)
		}
		// Default base for the built-in sets; -origin overrides.
		return 0x8000_0000, regions, []string{"boot", "minimal"}, nil
	}

	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return 0, nil, nil, err
	}
	origin, regions, err := cfg.Variant(variantName)
	if err != nil {
		return 0, nil, nil, err
	}
	return origin, regions, cfg.Variants(), nil
}

func buildSizers(hexFiles, dtbFile string) ([]memlayout.Sizer, error) {
	var sizers []memlayout.Sizer

	if hexFiles != "" {
		for _, pair := range strings.Split(hexFiles, ",") {
			name, path, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("malformed -hex entry %q, want region=file", pair)
			}
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("open hex object: %w", err)
			}
			img, err := content.NewHexImage(name, f)
			f.Close()
			if err != nil {
				return nil, err
			}
			sizers = append(sizers, img)
		}
	}

	if dtbFile != "" {
		data, err := os.ReadFile(dtbFile)
		if err != nil {
			return nil, fmt.Errorf("read devicetree blob: %w", err)
		}
		blob, err := content.NewFDTBlob("dtb", data)
		if err != nil {
			return nil, err
		}
		sizers = append(sizers, blob)
	}

	return sizers, nil
}

func printMap(p *composer.Placement) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 40 {
		width = w
	}

	fmt.Printf("Layout: origin %#x, end %#x (%d regions)\n\n", p.Origin, p.End(), len(p.Regions))
	for _, r := range p.Regions {
		line := fmt.Sprintf("  %-12s %-8s [%#010x, %#010x) %8d B%s",
			r.Region.Name, r.Region.Kind, r.Start, r.End, r.Size(), flagString(r))
		if len(line) > width {
			line = line[:width]
		}
		fmt.Println(line)
	}
}

func flagString(r composer.Placed) string {
	var flags []string
	if r.Region.Reclaimable {
		flags = append(flags, "reclaimable")
	}
	if !r.SizeResolved {
		flags = append(flags, "slot")
	}
	if len(flags) == 0 {
		return ""
	}
	return "  (" + strings.Join(flags, ", ") + ")"
}

func printSymbols(p *composer.Placement) {
	for _, s := range p.Symbols.Symbols() {
		fmt.Printf("  %#010x  %s\n", s.Addr, s.Name)
	}
}
