package main

import (
	"reflect"
	"testing"
)

func TestRewriteItemShortcut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"lanes"},
			want: []string{"lanes"},
		},
		{
			name: "item id first token",
			in:   []string{"lanes", "item-abc123"},
			want: []string{"lanes", "items", "show", "item-abc123"},
		},
		{
			name: "item id after value flag",
			in:   []string{"lanes", "--dir", "./tmp-ws", "item-abc123"},
			want: []string{"lanes", "--dir", "./tmp-ws", "items", "show", "item-abc123"},
		},
		{
			name: "item id after equals flag",
			in:   []string{"lanes", "--format=yaml", "item-abc123"},
			want: []string{"lanes", "--format=yaml", "items", "show", "item-abc123"},
		},
		{
			name: "item id after bool flag",
			in:   []string{"lanes", "--pretty", "item-abc123"},
			want: []string{"lanes", "--pretty", "items", "show", "item-abc123"},
		},
		{
			name: "item id after double dash",
			in:   []string{"lanes", "--dir", "./tmp-ws", "--", "item-abc123"},
			want: []string{"lanes", "--dir", "./tmp-ws", "--", "items", "show", "item-abc123"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"lanes", "items", "show", "item-abc123"},
			want: []string{"lanes", "items", "show", "item-abc123"},
		},
		{
			name: "flag value that looks like an id is skipped",
			in:   []string{"lanes", "--config", "item-conf", "board"},
			want: []string{"lanes", "--config", "item-conf", "board"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"lanes", "wat"},
			want: []string{"lanes", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteItemShortcut(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteItemShortcut:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
