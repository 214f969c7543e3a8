package solver

import (
	"strings"
	"testing"
)

func TestFormatSteps(t *testing.T) {
	res, err := ParseResult([]byte(`{"title":"Algebra","question":"x*2 = 8","result":"x = 4","steps":["x*2 = 8","x = 8/2","x^2 = 16"]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	collapsed := res.Format(FormatOptions{})
	want := []string{"Topic: Algebra", "Question: x*2 = 8", "Result: x = 4", "Step 1 ▶", "Step 2 ▶", "Step 3 ▶"}
	if strings.Join(collapsed, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected collapsed output:\n%s", strings.Join(collapsed, "\n"))
	}
	all := strings.Join(res.Format(FormatOptions{ExpandAll: true}), "\n")
	for _, s := range []string{"Step 2\n  x = 8÷2", "  x² = 16", "  x×2 = 8"} {
		if !strings.Contains(all, s) {
			t.Fatalf("expected %q in:\n%s", s, all)
		}
	}
}

func TestFormatSingleStepIsExpanded(t *testing.T) {
	res, _ := ParseResult([]byte(`{"steps":["sqrt(pi)"]}`))
	got := res.Format(FormatOptions{})
	if len(got) != 2 || got[1] != "  √(π)" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatExplanation(t *testing.T) {
	res, _ := ParseResult([]byte(`{"title":"Circle","explanation":"Area is pi r^2"}`))
	got := res.Format(FormatOptions{})
	if len(got) != 3 || got[0] != "Circle" || got[2] != "Area is pi r^2" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatFallback(t *testing.T) {
	res, err := ParseResult([]byte(`{"result":{"final_answer":"42","notes":["a",{"b":1}],"detail":{"a":1,"b":2,"c":3,"d":"` + strings.Repeat("z", 300) + `"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := res.Fields["final_answer"]; !ok {
		t.Fatal("expected wrapped result to be unwrapped")
	}
	lines := res.Format(FormatOptions{})
	out := strings.Join(lines, "\n")
	if lines[0] != "Detail" {
		t.Fatalf("expected sorted headings, got %q", lines[0])
	}
	for _, s := range []string{"Final Answer\n  42", "Notes\n  - a\n  - {\"b\":1}", "..."} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in:\n%s", s, out)
		}
	}
	full := strings.Join(res.Format(FormatOptions{ExpandAll: true}), "\n")
	if strings.Contains(full, "...") {
		t.Fatal("expected expanded output not to be truncated")
	}
}

func TestParseResultRejectsNonObject(t *testing.T) {
	if _, err := ParseResult([]byte(`[1,2]`)); err == nil {
		t.Fatal("expected error for array reply")
	}
	if _, err := ParseResult([]byte(`null`)); err == nil {
		t.Fatal("expected error for null reply")
	}
}

func TestJSONIsIndented(t *testing.T) {
	res, _ := ParseResult([]byte(`{"b":"<x>","a":1}`))
	want := "{\n  \"a\": 1,\n  \"b\": \"<x>\"\n}"
	if got := res.JSON(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
