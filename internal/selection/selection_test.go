package selection

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/backmassage/glbcrunch/internal/pipeline"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		n       int
		want    []int
		wantErr bool
	}{
		{"empty selects all", "", 3, []int{0, 1, 2}, false},
		{"all keyword", " ALL\n", 2, []int{0, 1}, false},
		{"none", "none", 3, nil, false},
		{"quit", "q\n", 3, nil, false},
		{"single", "2", 3, []int{1}, false},
		{"list and range", "1,3-5", 5, []int{0, 2, 3, 4}, false},
		{"spaces", "3 1", 3, []int{0, 2}, false},
		{"duplicates collapse", "2,1-2,2", 3, []int{0, 1}, false},
		{"list order not input order", "3,1", 3, []int{0, 2}, false},
		{"out of range", "4", 3, nil, true},
		{"zero", "0", 3, nil, true},
		{"reversed range", "3-1", 3, nil, true},
		{"garbage", "x", 3, nil, true},
		{"open range", "2-", 3, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.input, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSelection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("ParseSelection(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func candidates() []pipeline.Candidate {
	return []pipeline.Candidate{
		{Path: "/w/a.glb", RelPath: "a.glb", Size: 2048},
		{Path: "/w/b/c.glb", RelPath: "b/c.glb", Size: 10},
		{Path: "/w/d.glb", RelPath: "d.glb", Size: 1},
	}
}

func TestPrompt_Select(t *testing.T) {
	var out bytes.Buffer
	p := &Prompt{In: strings.NewReader("3,1\n"), Out: &out}

	got, err := p.Select(context.Background(), candidates())
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 2 || got[0].RelPath != "a.glb" || got[1].RelPath != "d.glb" {
		t.Errorf("got %+v", got)
	}
	if !strings.Contains(out.String(), "2) b/c.glb (10 B)") {
		t.Errorf("listing missing entry: %q", out.String())
	}
	if !strings.Contains(out.String(), "1) a.glb (2.0 KiB)") {
		t.Errorf("listing missing size: %q", out.String())
	}
}

func TestPrompt_EOFSelectsNothing(t *testing.T) {
	p := &Prompt{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	got, err := p.Select(context.Background(), candidates())
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v; want empty selection", got, err)
	}
}

func TestPrompt_AnswerWithoutNewline(t *testing.T) {
	p := &Prompt{In: strings.NewReader("2"), Out: &bytes.Buffer{}}
	got, err := p.Select(context.Background(), candidates())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].RelPath != "b/c.glb" {
		t.Errorf("got %+v", got)
	}
}

func TestPrompt_InvalidAnswer(t *testing.T) {
	p := &Prompt{In: strings.NewReader("9\n"), Out: &bytes.Buffer{}}
	if _, err := p.Select(context.Background(), candidates()); err == nil {
		t.Error("expected out of range error")
	}
}

func TestAll_Select(t *testing.T) {
	got, err := All{}.Select(context.Background(), candidates())
	if err != nil || len(got) != 3 {
		t.Errorf("got %v, %v", got, err)
	}
}

func TestForTerminal_AssumeYes(t *testing.T) {
	if _, ok := ForTerminal(true).(All); !ok {
		t.Error("assumeYes should select all without prompting")
	}
}
