package main

import (
	"reflect"
	"testing"
)

func TestRewriteValueShortcutArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"tempo"},
			want: []string{"tempo"},
		},
		{
			name: "value ref first token",
			in:   []string{"tempo", "@due"},
			want: []string{"tempo", "values", "get", "due"},
		},
		{
			name: "value ref after value flag",
			in:   []string{"tempo", "--format", "table", "@due"},
			want: []string{"tempo", "--format", "table", "values", "get", "due"},
		},
		{
			name: "value ref after equals flag",
			in:   []string{"tempo", "--config-dir=./tmp", "@due"},
			want: []string{"tempo", "--config-dir=./tmp", "values", "get", "due"},
		},
		{
			name: "value ref after bool flag",
			in:   []string{"tempo", "--pretty", "@due"},
			want: []string{"tempo", "--pretty", "values", "get", "due"},
		},
		{
			name: "value ref after double dash",
			in:   []string{"tempo", "--tz", "UTC", "--", "@due"},
			want: []string{"tempo", "--tz", "UTC", "values", "get", "due"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"tempo", "type", "--layout", "MM", "@due"},
			want: []string{"tempo", "type", "--layout", "MM", "@due"},
		},
		{
			name: "bare at sign not rewritten",
			in:   []string{"tempo", "@"},
			want: []string{"tempo", "@"},
		},
		{
			name: "trailing flags kept",
			in:   []string{"tempo", "@due", "--format", "edn"},
			want: []string{"tempo", "values", "get", "due", "--format", "edn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteValueShortcutArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
