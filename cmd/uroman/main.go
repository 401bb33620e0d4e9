// Command uroman romanizes text from the command line: direct positional
// arguments, or a file/stdin stream, in any of the four output shapes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/uroman-go/uroman"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("uroman", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var input, output, lcode, romFormat string
	var decodeUnicode, silent, runTest bool
	var cacheSize, maxLines int

	strFlag := func(p *string, short, long, def, usage string) {
		fs.StringVar(p, short, def, usage)
		fs.StringVar(p, long, def, usage)
	}
	boolFlag := func(p *bool, short, long string, usage string) {
		fs.BoolVar(p, short, false, usage)
		fs.BoolVar(p, long, false, usage)
	}
	intFlag := func(p *int, short, long string, def int, usage string) {
		fs.IntVar(p, short, def, usage)
		fs.IntVar(p, long, def, usage)
	}

	strFlag(&input, "i", "input", "", "input file (default: stdin, or positional args)")
	strFlag(&output, "o", "output", "", "output file (default: stdout)")
	strFlag(&lcode, "l", "lcode", "", "ISO 639-3 language hint")
	strFlag(&romFormat, "f", "rom_format", "str", "output format: str|edges|alts|lattice")
	boolFlag(&decodeUnicode, "d", "decode_unicode", "decode literal \\uXXXX escapes before romanizing")
	intFlag(&cacheSize, "c", "cache_size", 65536, "per-token cache capacity (0 disables caching)")
	fs.IntVar(&maxLines, "max_lines", 0, "stop after this many input lines (0: unlimited)")
	fs.BoolVar(&silent, "silent", false, "suppress progress reporting")
	fs.BoolVar(&runTest, "test", false, "run the built-in self-check corpus and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	format, err := parseFormat(romFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	u, err := uroman.Load(uroman.WithCacheSize(cacheSize))
	if err != nil {
		fmt.Fprintln(stderr, "uroman: load failed:", err)
		return 1
	}

	if runTest {
		return runSelfTest(u, stdout)
	}

	if positional := fs.Args(); len(positional) > 0 {
		return romanizeDirectArgs(u, positional, lcode, format, decodeUnicode, stdout)
	}

	in, closeIn, err := openInput(input, stdin)
	if err != nil {
		fmt.Fprintln(stderr, "uroman:", err)
		return 1
	}
	defer closeIn()

	out, closeOut, err := openOutput(output, stdout)
	if err != nil {
		fmt.Fprintln(stderr, "uroman:", err)
		return 1
	}
	defer closeOut()

	var progress io.Writer
	if !silent {
		progress = stderr
	}
	if decodeUnicode {
		in = &decodingReader{r: in}
	}
	if err := u.RomanizeFile(in, out, lcode, format, uroman.FileOptions{
		MaxLines: maxLines,
		Silent:   silent,
		Progress: progress,
	}); err != nil {
		fmt.Fprintln(stderr, "uroman:", err)
		return 1
	}
	return 0
}

func parseFormat(s string) (uroman.RomFormat, error) {
	switch strings.ToLower(s) {
	case "", "str":
		return uroman.FormatSTR, nil
	case "edges":
		return uroman.FormatEdges, nil
	case "alts":
		return uroman.FormatAlts, nil
	case "lattice":
		return uroman.FormatLattice, nil
	default:
		return 0, fmt.Errorf("uroman: unknown rom_format %q (want str|edges|alts|lattice)", s)
	}
}

func romanizeDirectArgs(u *uroman.Uroman, args []string, lcode string, format uroman.RomFormat, decodeUnicode bool, stdout io.Writer) int {
	for _, s := range args {
		if decodeUnicode {
			s = uroman.DecodeUnicodeEscapes(s)
		}
		res := u.RomanizeString(s, lcode, format)
		if format == uroman.FormatSTR {
			fmt.Fprintln(stdout, res.Str)
		} else {
			fmt.Fprintln(stdout, res.Str)
			for _, e := range res.Edges {
				fmt.Fprintf(stdout, "  [%d,%d,%q,%q]\n", e.Start, e.End, e.Text, e.Type)
			}
		}
	}
	return 0
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input %q: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output %q: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// decodingReader wraps an io.Reader, decoding \uXXXX escapes. On the first
// Read it buffers the whole input and decodes it in one pass, which is
// acceptable here since -d/--decode_unicode
// is a CLI convenience flag, not a hot path.
type decodingReader struct {
	r   io.Reader
	buf *strings.Reader
}

func (d *decodingReader) Read(p []byte) (int, error) {
	if d.buf == nil {
		b, err := io.ReadAll(d.r)
		if err != nil {
			return 0, err
		}
		d.buf = strings.NewReader(uroman.DecodeUnicodeEscapes(string(b)))
	}
	return d.buf.Read(p)
}

// selfTestCorpus is the built-in self-check sample set: one
// short phrase per script family, each with its language hint.
var selfTestCorpus = []struct {
	text, lang string
}{
	{"ألاسكا", ""},
	{"यह एक अच्छा अनुवाद है.", "hin"},
	{"ちょっとまってください", "jpn"},
	{"Игорь", "ukr"},
	{"三分之二", ""},
	{"⠼⠁⠃⠉", ""},
	{"한국", ""},
}

func runSelfTest(u *uroman.Uroman, stdout io.Writer) int {
	failed := 0
	for _, tc := range selfTestCorpus {
		res := u.RomanizeString(tc.text, tc.lang, uroman.FormatSTR)
		ok := res.Str != "" && res.Str != tc.text
		if ok {
			color.New(color.FgGreen).Fprintf(stdout, "PASS")
		} else {
			color.New(color.FgRed).Fprintf(stdout, "FAIL")
			failed++
		}
		fmt.Fprintf(stdout, "  %s -> %s\n", tc.text, res.Str)
	}
	fmt.Fprintf(stdout, "%d/%d passed\n", len(selfTestCorpus)-failed, len(selfTestCorpus))
	if failed > 0 {
		return 1
	}
	return 0
}
