package codec

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Options bundles codec limits and logging. Zero limits mean unlimited.
type Options struct {
	// MaxURIs bounds the number of distinct URIs in one instance.
	MaxURIs int `toml:"max_uris"`
	// MaxValues bounds the element count of a single label.
	MaxValues int `toml:"max_values"`
	// LogLevel selects a stderr logger at the given level ("debug", "info",
	// ...) when Logger is nil. Empty disables logging.
	LogLevel string `toml:"log_level"`
	// Logger receives debug records for every encode and decode.
	Logger *log.Logger `toml:"-"`
}

// DefaultOptions returns the options used by the package-level Encode and
// Decode functions.
func DefaultOptions() Options { return Options{} }

// LoadOptions parses options from a TOML document. Unknown keys are
// rejected so that typos do not silently disable a limit.
//
//	max_uris = 100000
//	max_values = 1000000
//	log_level = "debug"
func LoadOptions(data []byte) (Options, error) {
	var opt Options
	md, err := toml.Decode(string(data), &opt)
	if err != nil {
		return Options{}, fmt.Errorf("codec: parse options: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Options{}, fmt.Errorf("codec: unknown option keys: %s", strings.Join(keys, ", "))
	}
	if opt.MaxURIs < 0 || opt.MaxValues < 0 {
		return Options{}, fmt.Errorf("codec: limits must not be negative")
	}
	if opt.LogLevel != "" {
		if _, err := log.ParseLevel(opt.LogLevel); err != nil {
			return Options{}, fmt.Errorf("codec: log_level: %w", err)
		}
	}
	return opt, nil
}

var discard = log.New(io.Discard)

// logger resolves the logger described by the options.
func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.LogLevel == "" {
		return discard
	}
	lvl, err := log.ParseLevel(o.LogLevel)
	if err != nil {
		return discard
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           lvl,
		Prefix:          "tasl",
	})
}
