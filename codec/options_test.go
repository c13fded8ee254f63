package codec

import (
	"strings"
	"testing"
)

func TestLoadOptions(t *testing.T) {
	opt, err := LoadOptions([]byte(`
max_uris = 5
max_values = 7
log_level = "debug"
`))
	if err != nil {
		t.Fatalf("load err: %v", err)
	}
	if opt.MaxURIs != 5 || opt.MaxValues != 7 || opt.LogLevel != "debug" {
		t.Fatalf("unexpected options: %+v", opt)
	}
	if opt.logger() == discard {
		t.Fatalf("log_level should select a live logger")
	}
}

func TestLoadOptions_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key": "max_depth = 3\n",
		"negative":    "max_values = -1\n",
		"bad level":   "log_level = \"loud\"\n",
		"syntax":      "max_uris = \n",
	}
	for name, doc := range cases {
		if _, err := LoadOptions([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if !strings.HasPrefix(err.Error(), "codec: ") {
			t.Fatalf("%s: unexpected error text %q", name, err)
		}
	}
}

func TestDefaultOptions_Discard(t *testing.T) {
	if New(DefaultOptions()).log != discard {
		t.Fatalf("default codec should not log")
	}
}
