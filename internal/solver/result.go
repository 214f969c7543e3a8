package solver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Result is the decoded solver answer. Recognised fields are title,
// question, description, result, steps and explanation; anything else is
// shown generically.
type Result struct {
	Fields map[string]any
}

// ParseResult decodes a JSON object. A reply of the form {"result": {...}}
// is unwrapped.
func ParseResult(data []byte) (*Result, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("decode response: not an object")
	}
	if inner, ok := fields["result"].(map[string]any); ok {
		fields = inner
	}
	return &Result{Fields: fields}, nil
}

// Text returns a field rendered as text.
func (r *Result) Text(key string) (string, bool) {
	v, ok := r.Fields[key]
	if !ok || v == nil {
		return "", false
	}
	s := text(v)
	return s, s != ""
}

// Steps returns the step list when the reply has one.
func (r *Result) Steps() ([]string, bool) {
	raw, ok := r.Fields["steps"].([]any)
	if !ok {
		return nil, false
	}
	steps := make([]string, len(raw))
	for i, v := range raw {
		steps[i] = text(v)
	}
	return steps, true
}

// JSON is the indented raw reply.
func (r *Result) JSON() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Fields); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}

var symbols = []struct {
	re  *regexp.Regexp
	sub string
}{
	{regexp.MustCompile(`\*`), "×"},
	{regexp.MustCompile(`\^2`), "²"},
	{regexp.MustCompile(`\^3`), "³"},
	{regexp.MustCompile(`/`), "÷"},
	{regexp.MustCompile(`\bpi\b`), "π"},
	{regexp.MustCompile(`\bsqrt\b`), "√"},
}

// Prettify replaces ASCII maths notation with symbols.
func Prettify(s string) string {
	for _, r := range symbols {
		s = r.re.ReplaceAllString(s, r.sub)
	}
	return s
}

// FormatOptions controls Format.
type FormatOptions struct {
	// ExpandAll shows the text of every step and the full value of long
	// generic fields.
	ExpandAll bool
}

// truncateAt is where collapsed generic values are cut.
const truncateAt = 200

// Format renders the reply as display lines.
func (r *Result) Format(opts FormatOptions) []string {
	if steps, ok := r.Steps(); ok {
		return r.formatSteps(steps, opts)
	}
	if expl, ok := r.Text("explanation"); ok {
		var out []string
		if title, ok := r.Text("title"); ok {
			out = append(out, title, "")
		}
		return append(out, expl)
	}
	return r.formatFields(opts)
}

func (r *Result) formatSteps(steps []string, opts FormatOptions) []string {
	var out []string
	labels := []struct{ key, label string }{
		{"title", "Topic:"},
		{"question", "Question:"},
		{"description", "Description:"},
		{"result", "Result:"},
	}
	for _, l := range labels {
		if v, ok := r.Text(l.key); ok {
			out = append(out, l.label+" "+v)
		}
	}
	expand := opts.ExpandAll || len(steps) == 1
	for i, s := range steps {
		if !expand {
			out = append(out, fmt.Sprintf("Step %d ▶", i+1))
			continue
		}
		out = append(out, fmt.Sprintf("Step %d", i+1), "  "+Prettify(s))
	}
	return out
}

func (r *Result) formatFields(opts FormatOptions) []string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		out = append(out, heading(k))
		switch v := r.Fields[k].(type) {
		case string:
			out = append(out, "  "+v)
		case []any:
			for _, item := range v {
				out = append(out, "  - "+text(item))
			}
		default:
			s := indented(v)
			if obj, ok := v.(map[string]any); ok && len(obj) > 3 && !opts.ExpandAll {
				s = truncate(s, truncateAt) + "..."
			}
			for _, line := range strings.Split(s, "\n") {
				out = append(out, "  "+line)
			}
		}
	}
	return out
}

func heading(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func indented(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
