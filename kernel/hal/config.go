package hal

import (
	"fmt"
	"os"
	"regprobe/device/video/fb"
	"regprobe/kernel"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Register sources.
const (
	SourceDevMem = "devmem"
	SourceFixed  = "fixed"
)

// Port sink kinds.
const (
	PortDevPort = "devport"
	PortSerial  = "serial"
	PortSpeaker = "speaker"
	PortWAV     = "wav"
)

// valuePrefix marks the keys that provide fixed register values.
const valuePrefix = "value."

var adapterNames = map[string]bool{"fbdev": true, "mem": true, "term": true, "window": true}

var isTerminalFn = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PortConfig selects the byte sink for the port channel.
type PortConfig struct {
	// Kind is one of the Port* constants.
	Kind string

	// Path is the serial device or WAV file for the serial and wav kinds.
	Path string
}

// Config holds the settings parsed from the command line.
type Config struct {
	// Adapter is the name of the display adapter driver.
	Adapter string

	// Mode is the display mode to activate.
	Mode fb.Mode

	// Line selects the line rasterizer.
	Line fb.LineAlgorithm

	// Columns is the glyph grid width. Zero derives it from the mode width.
	Columns uint32

	// Regs is the path of a Lua register table script. Empty selects the
	// built-in table.
	Regs string

	// Source selects the register reader.
	Source string

	// Values holds the register values used by the fixed source.
	Values map[string]uint32

	Port PortConfig

	// Snapshot is the image file written when freezing, if set.
	Snapshot string

	// Freeze keeps the probe idle after reporting. When off, Run returns
	// once the values have been reported.
	Freeze bool
}

func invalidConfig(format string, args ...interface{}) *kernel.Error {
	return &kernel.Error{
		Module:  "hal",
		Message: "config: " + fmt.Sprintf(format, args...),
		Status:  kernel.InvalidParameter,
	}
}

// DefaultConfig returns the configuration used for keys that are missing from
// the command line.
func DefaultConfig() Config {
	adapter := "mem"
	if isTerminalFn() {
		adapter = "term"
	}

	return Config{
		Adapter: adapter,
		Mode:    fb.Mode{Width: 800, Height: 600, Format: fb.PixelBGRReserved8},
		Line:    fb.LineSampled,
		Source:  SourceDevMem,
		Port:    PortConfig{Kind: PortDevPort},
		Freeze:  true,
	}
}

// ParseConfig applies the recognized keys of a parsed command line on top of
// DefaultConfig. Unknown keys are ignored.
func ParseConfig(cmdLine map[string]string) (Config, *kernel.Error) {
	cfg := DefaultConfig()

	for k, v := range cmdLine {
		switch {
		case k == "adapter":
			if !adapterNames[v] {
				return cfg, invalidConfig("unknown adapter %q", v)
			}
			cfg.Adapter = v
		case k == "mode":
			w, h, ok := fb.ParseResolution(v)
			if !ok {
				return cfg, invalidConfig("malformed mode %q", v)
			}
			cfg.Mode.Width, cfg.Mode.Height = w, h
		case k == "format":
			format, ok := fb.ParsePixelFormat(v)
			if !ok {
				return cfg, invalidConfig("unknown pixel format %q", v)
			}
			cfg.Mode.Format = format
		case k == "line":
			line, ok := fb.ParseLineAlgorithm(v)
			if !ok {
				return cfg, invalidConfig("unknown line algorithm %q", v)
			}
			cfg.Line = line
		case k == "columns":
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil || n == 0 {
				return cfg, invalidConfig("malformed column count %q", v)
			}
			cfg.Columns = uint32(n)
		case k == "regs":
			cfg.Regs = v
		case k == "source":
			if v != SourceDevMem && v != SourceFixed {
				return cfg, invalidConfig("unknown register source %q", v)
			}
			cfg.Source = v
		case strings.HasPrefix(k, valuePrefix):
			n, err := strconv.ParseUint(v, 0, 32)
			if err != nil {
				return cfg, invalidConfig("malformed value for %s: %q", k, v)
			}
			if cfg.Values == nil {
				cfg.Values = make(map[string]uint32)
			}
			cfg.Values[strings.TrimPrefix(k, valuePrefix)] = uint32(n)
		case k == "port":
			port, ok := parsePortConfig(v)
			if !ok {
				return cfg, invalidConfig("unknown port sink %q", v)
			}
			cfg.Port = port
		case k == "snapshot":
			cfg.Snapshot = v
		case k == "freeze":
			switch v {
			case "on":
				cfg.Freeze = true
			case "off":
				cfg.Freeze = false
			default:
				return cfg, invalidConfig("freeze must be on or off; got %q", v)
			}
		}
	}

	return cfg, nil
}

func parsePortConfig(v string) (PortConfig, bool) {
	kind, path := v, ""
	if i := strings.IndexByte(v, ':'); i >= 0 {
		kind, path = v[:i], v[i+1:]
	}

	switch kind {
	case PortDevPort, PortSpeaker:
		return PortConfig{Kind: kind}, path == ""
	case PortSerial, PortWAV:
		return PortConfig{Kind: kind, Path: path}, path != ""
	}

	return PortConfig{}, false
}
