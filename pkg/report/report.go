// Package report prints study query results to the console.
//
// The default "tuple" format prints one row per line as a parenthesized
// tuple, e.g. (1, 'a665a4...', 45, '2025-01-10'), with NULL shown as
// None. The "json" and "pretty" formats print one JSON object per row.
package report

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
)

// Separator is printed between report sections, surrounded by empty
// lines.
const Separator = "\n--------------------------"

// Row is a result row that knows its column names and values.
type Row interface {
	Columns() []string
	Values() []any
}

// Writer prints headings, messages and result rows.
type Writer struct {
	w      io.Writer
	format string
}

// New creates a Writer. Unknown formats fall back to "tuple".
func New(w io.Writer, format string) *Writer {
	switch format {
	case "json", "pretty":
	default:
		format = "tuple"
	}
	return &Writer{w: w, format: format}
}

// Format returns the output format of the writer.
func (w *Writer) Format() string {
	return w.format
}

// Line prints a message followed by a new line.
func (w *Writer) Line(s string) {
	fmt.Fprintln(w.w, s)
}

// Linef formats and prints a message followed by a new line.
func (w *Writer) Linef(format string, args ...any) {
	fmt.Fprintf(w.w, format+"\n", args...)
}

// Separator prints the section separator.
func (w *Writer) Separator() {
	fmt.Fprint(w.w, Separator+"\n\n")
}

// Rows prints every row in the writer's format.
func Rows[T Row](w *Writer, rows []T) error {
	for _, row := range rows {
		line, err := w.render(row)
		if err != nil {
			return err
		}
		fmt.Fprintln(w.w, line)
	}
	return nil
}

func (w *Writer) render(row Row) (string, error) {
	if w.format == "tuple" {
		return Tuple(row.Values()...), nil
	}

	cols := row.Columns()
	vals := row.Values()
	obj := make(map[string]any, len(cols))
	for i, col := range cols {
		if i < len(vals) {
			obj[col] = plain(vals[i])
		}
	}

	enc := gnfmt.GNjson{Pretty: w.format == "pretty"}
	res, err := enc.Encode(obj)
	if err != nil {
		return "", EncodeError(err)
	}
	return string(res), nil
}

// Tuple renders values as a parenthesized tuple with quoted strings.
func Tuple(vals ...any) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = literal(v)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// plain unwraps nullable SQL values, NULL becomes nil.
func plain(v any) any {
	switch t := v.(type) {
	case sql.NullInt64:
		if !t.Valid {
			return nil
		}
		return t.Int64
	case sql.NullFloat64:
		if !t.Valid {
			return nil
		}
		return t.Float64
	case sql.NullString:
		if !t.Valid {
			return nil
		}
		return t.String
	}
	return v
}

func literal(v any) string {
	switch t := plain(v).(type) {
	case nil:
		return "None"
	case string:
		return quote(t)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case float64:
		return floatLiteral(t)
	case float32:
		return floatLiteral(float64(t))
	case int, int32, int64:
		return fmt.Sprintf("%d", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// quote uses single quotes unless the text contains a single quote and
// no double quotes.
func quote(s string) string {
	q := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = `"`
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	if q == "'" {
		s = strings.ReplaceAll(s, "'", `\'`)
	}
	s = strings.ReplaceAll(s, "\n", `\n`)
	return q + s + q
}

func floatLiteral(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
