package uroman

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
)

// lcodeLineRe matches a per-line language override: "::lcode xyz rest...".
// The prefix through the trailing space is preserved verbatim in STR output.
var lcodeLineRe = regexp.MustCompile(`^(::lcode\s+)([a-z]{3})(\s+)(.*)$`)

// FileOptions configures RomanizeFile's progress reporting.
type FileOptions struct {
	MaxLines int       // 0 means unlimited
	Silent   bool      // suppress progress reporting
	Progress io.Writer // defaults to nil (no reporting) if Silent or unset
}

// RomanizeFile reads newline-delimited text from in and writes its
// romanization to out, one line per input line, honoring per-line
// "::lcode xyz " overrides. lang is the default language hint
// for lines without an override.
func (u *Uroman) RomanizeFile(in io.Reader, out io.Writer, lang string, format RomFormat, opts FileOptions) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	w := bufio.NewWriter(out)
	defer w.Flush()

	lineNo := 0
	for sc.Scan() {
		if opts.MaxLines > 0 && lineNo >= opts.MaxLines {
			break
		}
		line := sc.Text()
		lineNo++
		reportProgress(opts, lineNo)

		lineLang := lang
		prefix := ""
		text := line
		var metaEdge []interface{}
		if m := lcodeLineRe.FindStringSubmatch(line); m != nil {
			prefix = m[1] + m[2] + m[3]
			text = m[4]
			lineLang = m[2]
			metaEdge = []interface{}{0, 0, "", "lcode: " + m[2]}
		}

		res := u.RomanizeString(text, lineLang, format)
		if err := writeResultLine(w, prefix, res, format, metaEdge); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return w.Flush()
}

func reportProgress(opts FileOptions, lineNo int) {
	if opts.Silent || opts.Progress == nil {
		return
	}
	if lineNo%1000 == 0 {
		fmt.Fprintf(opts.Progress, "%d\n", lineNo)
	} else if lineNo%100 == 0 {
		fmt.Fprint(opts.Progress, ".")
	}
}

func writeResultLine(w *bufio.Writer, prefix string, res Result, format RomFormat, metaEdge []interface{}) error {
	if format == FormatSTR {
		_, err := fmt.Fprintln(w, prefix+res.Str)
		return err
	}
	rows := make([]interface{}, 0, len(res.Edges)+1)
	if metaEdge != nil {
		rows = append(rows, metaEdge)
	}
	for _, e := range res.Edges {
		rows = append(rows, []interface{}{e.Start, e.End, e.Text, e.Type})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshaling edges: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
