package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into discovery, compressor, behavior, display, and utility.
// The YAML config file sits between defaults and flags: flags are parsed once
// to find the root and --config, the file is applied, then flags are parsed
// again so explicit flags win.

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseFlags parses args (without the program name) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, too many positional args, malformed config file).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs, n := newFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if n.showHelp {
		printUsage(os.Stderr, version)
		os.Exit(0)
	}
	if n.showVersion {
		fmt.Fprintln(os.Stdout, "glbcrunch v"+version)
		os.Exit(0)
	}

	if err := parsePositionalArgs(fs, cfg); err != nil {
		return err
	}

	loaded, err := loadConfigFile(cfg, n.configPath)
	if err != nil {
		return err
	}
	if loaded {
		// Defaults of the second flag set are the file-backed values, so only
		// flags the user actually passed override them.
		fs, n = newFlagSet(cfg)
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := parsePositionalArgs(fs, cfg); err != nil {
			return err
		}
	}

	applyNegatedFlags(cfg, n)
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse, plus the
// values that only steer parsing itself.
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
	configPath  string
}

func newFlagSet(cfg *Config) (*flag.FlagSet, *negatedFlags) {
	fs := flag.NewFlagSet("glbcrunch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	n := &negatedFlags{}

	defineDiscoveryFlags(fs, cfg)
	defineCompressorFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, n)
	defineDisplayFlags(fs, cfg, n)
	defineUtilityFlags(fs, n)
	return fs, n
}

// defineDiscoveryFlags registers --depth and --skip-unreadable.
func defineDiscoveryFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, "Maximum directory depth to scan")
	fs.BoolVar(&cfg.SkipUnreadable, "skip-unreadable", cfg.SkipUnreadable, "Skip unreadable subdirectories")
}

// defineCompressorFlags registers --tool and --suffix.
func defineCompressorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Tool, "tool", cfg.Tool, "Compressor executable")
	fs.StringVar(&cfg.IntermediateSuffix, "suffix", cfg.IntermediateSuffix, "Intermediate file suffix")
}

// defineBehaviorFlags registers --on-failure, --yes, --dry-run, --config.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.Var(&failurePolicyValue{&cfg.OnFailure}, "on-failure", "Batch failure policy: abort | continue")
	fs.BoolVar(&cfg.AssumeYes, "yes", cfg.AssumeYes, "Select all files without prompting")
	fs.BoolVar(&cfg.AssumeYes, "y", cfg.AssumeYes, "Same as --yes")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Print commands only; do not touch files")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.StringVar(&n.configPath, "config", "", "YAML config file")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check,
// --analyze, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", cfg.CheckOnly, "Probe the compressor and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", cfg.CheckOnly, "Same as --check")
	fs.BoolVar(&cfg.Analyze, "analyze", cfg.Analyze, "Print a size report and exit")
	fs.BoolVar(&cfg.Analyze, "a", cfg.Analyze, "Same as --analyze")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies color overrides into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets Root from the optional positional arg.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		cfg.Root = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("expected at most one root directory, got %d", len(args))
	}
}

// loadConfigFile applies the explicit --config file, or the default file in
// the root directory. It reports whether a file was applied.
func loadConfigFile(cfg *Config, explicit string) (bool, error) {
	if explicit != "" {
		if err := LoadFile(cfg, explicit); err != nil {
			return false, err
		}
		return true, nil
	}
	if cfg.CheckOnly || cfg.Root == "" {
		return false, nil
	}
	if err := LoadDefaultFile(cfg, cfg.Root); err != nil {
		return false, err
	}
	return cfg.ConfigFile != "", nil
}

// printUsage writes the help text to w. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "glbcrunch v" + version + " - batch GLB compressor (etc1s + draco via gltf-transform)"},
		{"", ""},
		{"  glbcrunch [OPTIONS] [root]", ""},
		{"", ""},
		{"Discovery", ""},
		{"  --depth <n>", "Maximum directory depth (default: 4)"},
		{"  --skip-unreadable", "Skip unreadable subdirectories"},
		{"", ""},
		{"Compressor", ""},
		{"  --tool <name>", "Compressor executable (default: gltf-transform)"},
		{"  --suffix <s>", "Intermediate file suffix (default: -etc1s)"},
		{"", ""},
		{"Behavior", ""},
		{"  --on-failure <abort|continue>", "Stop at first failure or run every file"},
		{"  -y, --yes", "Select all files without prompting"},
		{"  -d, --dry-run", "Print commands only; do not touch files"},
		{"  --config <path>", "YAML config file (default: <root>/" + DefaultConfigName + ")"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Probe the compressor and exit"},
		{"  -a, --analyze", "List discovered files by size, flag outliers, exit"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so FailurePolicy can be used with flag.Var.

type failurePolicyValue struct{ p *FailurePolicy }

func (f *failurePolicyValue) String() string {
	if f.p == nil {
		return ""
	}
	return string(*f.p)
}

func (f *failurePolicyValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "abort":
		*f.p = FailureAbort
	case "continue":
		*f.p = FailureContinue
	default:
		return fmt.Errorf("invalid failure policy %q (use 'abort' or 'continue')", s)
	}
	return nil
}
