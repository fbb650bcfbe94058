package metadata

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParsePair(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{name: "simple", arg: "source=screenshot", wantKey: "source", wantValue: "screenshot"},
		{name: "value keeps extra equals", arg: "query=a=b=c", wantKey: "query", wantValue: "a=b=c"},
		{name: "empty value", arg: "flag=", wantKey: "flag", wantValue: ""},
		{name: "missing separator", arg: "novalue", wantErr: true},
		{name: "empty key", arg: "=value", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, err := ParsePair(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePair(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if key != tt.wantKey || value != tt.wantValue {
				t.Errorf("ParsePair(%q) = (%q, %q), want (%q, %q)", tt.arg, key, value, tt.wantKey, tt.wantValue)
			}
		})
	}
}

func TestParse_LaterValueWins(t *testing.T) {
	md, err := Parse([]string{"alt=first", "title=hello", "alt=second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Metadata{"alt": "second", "title": "hello"}
	if !reflect.DeepEqual(md, want) {
		t.Errorf("Parse() = %v, want %v", md, want)
	}
}

func TestParse_ReportsIndex(t *testing.T) {
	_, err := Parse([]string{"ok=1", "broken"})
	if err == nil {
		t.Fatal("expected error for malformed argument")
	}

	var perr ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	if perr.Index != 1 {
		t.Errorf("expected index 1, got %d", perr.Index)
	}
	if perr.Arg != "broken" {
		t.Errorf("expected arg 'broken', got %q", perr.Arg)
	}
}

func TestSet_Overwrites(t *testing.T) {
	md := Metadata{}
	md.Set("k", "v1")
	md.Set("k", "v2")

	if len(md) != 1 {
		t.Fatalf("expected 1 key, got %d", len(md))
	}
	if md["k"] != "v2" {
		t.Errorf("expected latest value 'v2', got %q", md["k"])
	}
}

func TestJSON_Empty(t *testing.T) {
	var nilMap Metadata
	for name, md := range map[string]Metadata{"nil": nilMap, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			got, err := md.JSON()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "{}" {
				t.Errorf("JSON() = %q, want %q", got, "{}")
			}
		})
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	cases := []Metadata{
		{"a": "1"},
		{"unicode": "héllo wörld", "quote": `say "hi"`},
		{"empty": "", "eq": "x=y", "newline": "line1\nline2"},
	}

	for _, md := range cases {
		encoded, err := md.JSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded Metadata
		if err := json.Unmarshal([]byte(encoded), &decoded); err != nil {
			t.Fatalf("failed to decode %q: %v", encoded, err)
		}
		if !reflect.DeepEqual(decoded, md) {
			t.Errorf("round trip mismatch: got %v, want %v", decoded, md)
		}
	}
}

func TestMerge(t *testing.T) {
	md := Metadata{"a": "1", "b": "2"}
	md.Merge(Metadata{"b": "3", "c": "4"})

	want := Metadata{"a": "1", "b": "3", "c": "4"}
	if !reflect.DeepEqual(md, want) {
		t.Errorf("Merge() = %v, want %v", md, want)
	}
}
