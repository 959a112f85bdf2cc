package template

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no placeholders",
			text: "plain text with no markers",
			want: nil,
		},
		{
			name: "single placeholder",
			text: "Hello {{name}}!",
			want: []string{"name"},
		},
		{
			name: "multiple placeholders in order",
			text: "Hello {{name}}, welcome to {{place}}!",
			want: []string{"name", "place"},
		},
		{
			name: "duplicates preserved",
			text: "{{a}} and {{b}} and {{a}}",
			want: []string{"a", "b", "a"},
		},
		{
			name: "whitespace kept verbatim",
			text: "{{ name }}",
			want: []string{" name "},
		},
		{
			name: "case sensitive",
			text: "{{Name}} {{name}}",
			want: []string{"Name", "name"},
		},
		{
			name: "empty name",
			text: "before {{}} after",
			want: []string{""},
		},
		{
			name: "unmatched open yields nothing",
			text: "broken {{name",
			want: nil,
		},
		{
			name: "unmatched open after valid placeholder",
			text: "{{ok}} then {{broken",
			want: []string{"ok"},
		},
		{
			name: "close without open",
			text: "stray }} here",
			want: nil,
		},
		{
			name: "regex special characters in name",
			text: "{{a.*b}} {{c[0]}}",
			want: []string{"a.*b", "c[0]"},
		},
		{
			name: "single closing brace inside name",
			text: "{{a}b}}",
			want: []string{"a}b"},
		},
		{
			name: "adjacent placeholders",
			text: "{{a}}{{b}}",
			want: []string{"a", "b"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	text := "{{a}} {{b}} {{a}} {{broken"

	first := Extract(text)
	second := Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs: %v vs %v", first, second)
	}
}
