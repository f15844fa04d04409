package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/itchyny/gojq"
)

// Response is the success envelope for JSON output.
type Response struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// ErrorResponse is the error envelope for JSON output.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code"`
	Hint  string `json:"hint,omitempty"`
}

// Format specifies the output format.
type Format int

const (
	FormatAuto   Format = iota // Auto-detect: TTY → Styled, non-TTY → JSON
	FormatJSON                 // Full envelope as JSON
	FormatQuiet                // Data field only, as JSON
	FormatStyled               // Human-readable, ANSI styled
	FormatCount                // Item count only
)

// ParseFormat maps a config format name to a Format.
func ParseFormat(name string) Format {
	switch name {
	case "json":
		return FormatJSON
	case "quiet":
		return FormatQuiet
	case "styled":
		return FormatStyled
	case "count":
		return FormatCount
	default:
		return FormatAuto
	}
}

// Options controls output behavior.
type Options struct {
	Format Format
	Writer io.Writer

	// JQ is an optional gojq filter applied to JSON output.
	JQ string
}

// Writer handles all output formatting.
type Writer struct {
	opts  Options
	query *gojq.Query
}

// New creates a new output writer. An invalid JQ expression is reported on
// first use rather than here.
func New(opts Options) *Writer {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	w := &Writer{opts: opts}
	if opts.JQ != "" {
		if q, err := gojq.Parse(opts.JQ); err == nil {
			w.query = q
		}
	}
	return w
}

// ResponseOption mutates a Response before it is written.
type ResponseOption func(*Response)

// WithSummary attaches a one-line summary to the response.
func WithSummary(s string) ResponseOption {
	return func(r *Response) { r.Summary = s }
}

// OK outputs a success response.
func (w *Writer) OK(data any, opts ...ResponseOption) error {
	resp := &Response{OK: true, Data: data}
	for _, opt := range opts {
		opt(resp)
	}
	return w.write(resp)
}

// Err outputs an error response.
func (w *Writer) Err(err error) error {
	e := AsError(err)
	resp := &ErrorResponse{
		OK:    false,
		Error: e.Message,
		Code:  e.Code,
		Hint:  e.Hint,
	}
	return w.write(resp)
}

func (w *Writer) write(v any) error {
	format := w.opts.Format

	// Auto-detect format: TTY → Styled, non-TTY → JSON
	if format == FormatAuto {
		if isTTY(w.opts.Writer) {
			format = FormatStyled
		} else {
			format = FormatJSON
		}
	}

	switch format {
	case FormatQuiet:
		if resp, ok := v.(*Response); ok {
			return w.writeJSON(resp.Data)
		}
		return w.writeJSON(v)
	case FormatCount:
		return w.writeCount(v)
	case FormatStyled:
		return w.writeStyled(v)
	default:
		return w.writeJSON(v)
	}
}

func (w *Writer) writeJSON(v any) error {
	if w.opts.JQ != "" {
		return w.writeFiltered(v)
	}
	enc := json.NewEncoder(w.opts.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFiltered runs the gojq filter over the JSON form of v and prints each
// produced value on its own line, mirroring jq's behavior.
func (w *Writer) writeFiltered(v any) error {
	if w.query == nil {
		return ErrUsage(fmt.Sprintf("invalid jq expression: %s", w.opts.JQ))
	}

	// gojq operates on generic JSON values, so round-trip through encoding.
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	iter := w.query.Run(generic)
	for {
		out, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := out.(error); isErr {
			return ErrUsageHint("jq filter failed", err.Error())
		}
		if s, isStr := out.(string); isStr {
			// Bare strings print unquoted, like jq -r.
			fmt.Fprintln(w.opts.Writer, s)
			continue
		}
		line, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Fprintln(w.opts.Writer, string(line))
	}
	return nil
}

func (w *Writer) writeCount(v any) error {
	n := 0
	if resp, ok := v.(*Response); ok {
		switch data := resp.Data.(type) {
		case nil:
		default:
			raw, err := json.Marshal(data)
			if err != nil {
				return err
			}
			var generic any
			if err := json.Unmarshal(raw, &generic); err != nil {
				return err
			}
			if slice, ok := generic.([]any); ok {
				n = len(slice)
			} else {
				n = 1
			}
		}
	}
	_, err := fmt.Fprintln(w.opts.Writer, n)
	return err
}

// isTTY checks if the writer is a terminal.
func isTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		fi, err := f.Stat()
		if err != nil {
			return false
		}
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
