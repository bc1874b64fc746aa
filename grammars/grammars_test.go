package grammars

import (
	"slices"
	"testing"
)

func TestLookup(t *testing.T) {
	if got := Names(); !slices.Equal(got, []string{"csv", "ebnf", "json"}) {
		t.Errorf("Names() = %v", got)
	}

	check, err := Lookup("json")
	if err != nil {
		t.Fatal(err)
	}
	if err := check("a.json", `{"a": [1]}`); err != nil {
		t.Errorf("valid JSON: %v", err)
	}
	if err := check("a.json", `{"a": }`); err == nil {
		t.Error("invalid JSON accepted")
	}

	if _, err := Lookup("xml"); err == nil {
		t.Error("unknown grammar found")
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"data/people.CSV", true},
		{"config.json", true},
		{"go.ebnf", true},
		{"README", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := ForFile(tt.path)
			if (err == nil) != tt.ok {
				t.Errorf("ForFile(%q) error = %v, want ok=%v", tt.path, err, tt.ok)
			}
		})
	}
}
