package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wbrown/rakuga"
	"github.com/wbrown/rakuga/imageutil"
	"github.com/wbrown/rakuga/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(fs *flag.FlagSet, w io.Writer) {
	name := fs.Name()
	fmt.Fprintf(w, "Usage: %s [flags] <character> [width] [height] [font_path]\n", name)
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  %s あ\n", name)
	fmt.Fprintf(w, "  %s カ 30 30\n", name)
	fmt.Fprintf(w, "  %s -charset blocks -color truecolor A 20 20 /path/to/font.ttf\n", name)
	fmt.Fprintf(w, "\nFlags:\n")
	fs.PrintDefaults()
}

// run parses args, renders and writes the result. It returns the process
// exit status.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rakuga", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFile := fs.String("config", "",
		"Path to a JSON configuration file")
	width := fs.Int("width", config.DefaultWidth,
		"Target width in terminal characters")
	height := fs.Int("height", config.DefaultHeight,
		"Target height in terminal characters")
	aspect := fs.Float64("aspect", rakuga.DefaultAspectRatio,
		"Height-to-width ratio of a terminal character cell")
	charset := fs.String("charset", config.DefaultCharset,
		"Character set: density or blocks")
	colorMode := fs.String("color", config.DefaultColor,
		"Color mode: none, ansi256, truecolor or auto")
	fontPath := fs.String("font", config.DefaultFontPath,
		"Path to a TTF or OTF font")
	backend := fs.String("backend", config.DefaultBackend,
		"Font backend: auto, freetype or opentype")
	imagePath := fs.String("image", "",
		"Render a pre-rasterized glyph image (PNG, JPEG, GIF, TIFF) instead of a font glyph")
	invert := fs.Bool("invert", false,
		"Treat dark pixels of -image as ink")
	sizeMultiplier := fs.Float64("size-multiplier", 1.0,
		"Scale applied to the computed raster size")
	format := fs.String("format", "ansi",
		"Output format: ansi or html")
	interp := fs.String("interp", "nearest",
		"Scaling for -image: nearest, linear or area")
	outputFile := fs.String("output", "",
		"Path to save the output (if not specified, prints to stdout)")
	quiet := fs.Bool("q", false,
		"Do not print the header line")
	verbose := fs.Bool("v", false,
		"Log debug diagnostics to stderr")
	fs.Usage = func() { usage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *verbose {
		rakuga.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		defer rakuga.SetLogger(nil)
	}

	if *format != "ansi" && *format != "html" {
		fmt.Fprintf(stderr, "Error: unknown format %q, options are ansi or html\n", *format)
		return 1
	}
	interpolation, err := imageutil.ParseInterpolation(*interp)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if fs.NArg() < 1 {
		usage(fs, stderr)
		return 1
	}

	cfg := &config.Config{}
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// Explicit flags override the configuration file.
	flags := &config.Config{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			flags.Width = width
		case "height":
			flags.Height = height
		case "aspect":
			flags.AspectRatio = aspect
		case "charset":
			flags.Charset = charset
		case "color":
			flags.Color = colorMode
		case "font":
			flags.FontPath = fontPath
		case "backend":
			flags.Backend = backend
		case "invert":
			flags.InvertImage = invert
		case "size-multiplier":
			flags.SizeMultiplier = sizeMultiplier
		}
	})
	cfg.Override(flags)

	character, positional, err := parsePositional(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg.Override(positional)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var source string
	var ras rakuga.Rasterizer
	if *imagePath != "" {
		source = *imagePath
		var img *rakuga.ImageRasterizer
		img, err = rakuga.LoadImageRasterizer(*imagePath, cfg.GetInvertImage())
		if err == nil {
			img.Interpolation = interpolation
			ras = img
		}
	} else {
		source = cfg.GetFontPath()
		ras, err = rakuga.LoadFont(source, cfg.GetBackend())
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	renderer := rakuga.NewRenderer(cfg.RendererOptions()...)
	w, h := cfg.GetWidth(), cfg.GetHeight()

	grid, err := renderer.Render(ras, character, w, h)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var sb strings.Builder
	if *format == "html" {
		sb.WriteString(grid.HTML())
	} else {
		if !*quiet {
			fmt.Fprintf(&sb, "Rendering '%c' at %dx%d using %s\n\n", character, w, h, source)
		}
		for _, line := range grid.Lines() {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(sb.String()), 0644); err != nil {
			fmt.Fprintf(stderr, "Error writing to file: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "Output written to %s\n", *outputFile)
		return 0
	}
	fmt.Fprint(stdout, sb.String())
	return 0
}

// parsePositional reads <character> [width] [height] [font_path].
func parsePositional(args []string) (rune, *config.Config, error) {
	cfg := &config.Config{}
	character, size := utf8.DecodeRuneInString(args[0])
	if character == utf8.RuneError && size <= 1 {
		character = '?'
	}
	if len(args) > 1 {
		w, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, nil, fmt.Errorf("invalid width %q: %w", args[1], err)
		}
		cfg.Width = &w
	}
	if len(args) > 2 {
		h, err := strconv.Atoi(args[2])
		if err != nil {
			return 0, nil, fmt.Errorf("invalid height %q: %w", args[2], err)
		}
		cfg.Height = &h
	}
	if len(args) > 3 {
		p := args[3]
		cfg.FontPath = &p
	}
	if len(args) > 4 {
		return 0, nil, fmt.Errorf("too many arguments: %s", strings.Join(args[4:], " "))
	}
	return character, cfg, nil
}
