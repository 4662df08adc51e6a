package crfsuite

import (
	"strings"
	"testing"
)

func TestReadInstances(t *testing.T) {
	data := "B-NP\tw[0]=The\tpos[0]=DT\n" +
		"I-NP\tw[0]=cat\tpos[0]=NN\n" +
		"\n" +
		"O\tw[0]=!\n"

	instances, err := ReadInstances(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadInstances() error = %v", err)
	}
	if len(instances) != 2 {
		t.Fatalf("got %d instances, want 2", len(instances))
	}

	first := instances[0]
	if len(first.Items) != 2 || len(first.Labels) != 2 {
		t.Fatalf("first instance has %d items / %d labels, want 2 / 2", len(first.Items), len(first.Labels))
	}
	if first.Labels[0] != "B-NP" || first.Labels[1] != "I-NP" {
		t.Errorf("first labels = %v", first.Labels)
	}
	if first.Items[0][0].Name != "w[0]=The" || first.Items[0][0].Value != 1 {
		t.Errorf("first attribute = %+v", first.Items[0][0])
	}

	second := instances[1]
	if len(second.Items) != 1 || second.Labels[0] != "O" {
		t.Errorf("second instance = %+v", second)
	}
}

func TestReadInstancesTrailingSequence(t *testing.T) {
	// No terminating blank line; the last sequence still flushes.
	data := "A\tf1\nB\tf2"

	instances, err := ReadInstances(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadInstances() error = %v", err)
	}
	if len(instances) != 1 {
		t.Fatalf("got %d instances, want 1", len(instances))
	}
	if got := instances[0].Labels; got[0] != "A" || got[1] != "B" {
		t.Errorf("labels = %v", got)
	}
}

func TestReadInstancesBlankRuns(t *testing.T) {
	data := "\n\nA\tf1\n\n\n\nB\tf2\n\n"

	instances, err := ReadInstances(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadInstances() error = %v", err)
	}
	if len(instances) != 2 {
		t.Fatalf("got %d instances, want 2", len(instances))
	}
}

func TestReadInstancesCRLF(t *testing.T) {
	data := "A\tf1\r\n\r\nB\tf2\r\n"

	instances, err := ReadInstances(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadInstances() error = %v", err)
	}
	if len(instances) != 2 {
		t.Fatalf("got %d instances, want 2", len(instances))
	}
	if name := instances[0].Items[0][0].Name; name != "f1" {
		t.Errorf("attribute name = %q, want \"f1\"", name)
	}
}

func TestReadInstancesMissingLabel(t *testing.T) {
	if _, err := ReadInstances(strings.NewReader("\tf1\n")); err == nil {
		t.Fatal("expected error for a line without a label")
	}
}

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  Attribute
	}{
		{name: "plain", field: "w[0]=dog", want: Attribute{Name: "w[0]=dog", Value: 1}},
		{name: "weighted", field: "pos[0]=NN:0.5", want: Attribute{Name: "pos[0]=NN", Value: 0.5}},
		{name: "negative weight", field: "bias:-2", want: Attribute{Name: "bias", Value: -2}},
		{name: "colon in name", field: "w[0]=12:30pm", want: Attribute{Name: "w[0]=12:30pm", Value: 1}},
		{name: "weight after colon in name", field: "w[0]=12:30pm:2", want: Attribute{Name: "w[0]=12:30pm", Value: 2}},
		{name: "trailing colon", field: "w[0]=end:", want: Attribute{Name: "w[0]=end:", Value: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseAttribute(tt.field); got != tt.want {
				t.Errorf("parseAttribute(%q) = %+v, want %+v", tt.field, got, tt.want)
			}
		})
	}
}
