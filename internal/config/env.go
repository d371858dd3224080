package config

import (
	"flag"
	"os"
	"strings"
	"time"

	apperrors "github.com/agbru/rangeprod/internal/errors"
)

// isFlagSet reports whether the flag was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny is isFlagSet for aliased flags.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an environment key (without EnvPrefix) to the flags it
// stands in for.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, *rangeSources, string) error
}

// envOverrides lists every RANGEPROD_* variable. Range values reject
// malformed input; the other settings ignore values they cannot parse.
var envOverrides = []envOverride{
	{"THREADS", []string{"threads", "t"}, func(c *AppConfig, s *rangeSources, v string) error {
		if s.threads {
			return nil
		}
		n, err := ParseThreads(v)
		if err != nil {
			return err
		}
		c.Threads, s.threads = n, true
		return nil
	}},
	{"START", []string{"start"}, func(c *AppConfig, s *rangeSources, v string) error {
		if s.start {
			return nil
		}
		n, err := ParseBound("start", v)
		if err != nil {
			return err
		}
		c.Start, s.start = n, true
		return nil
	}},
	{"END", []string{"end"}, func(c *AppConfig, s *rangeSources, v string) error {
		if s.end {
			return nil
		}
		n, err := ParseBound("end", v)
		if err != nil {
			return err
		}
		c.End, s.end = n, true
		return nil
	}},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, _ *rangeSources, v string) error {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
		return nil
	}},

	{"POLICY", []string{"policy"}, func(c *AppConfig, _ *rangeSources, v string) error {
		c.policyName = v
		return nil
	}},
	{"ALGO", []string{"algo"}, func(c *AppConfig, _ *rangeSources, v string) error {
		c.Algo = v
		return nil
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, _ *rangeSources, v string) error {
		c.OutputFile = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, _ *rangeSources, v string) error {
		c.LogLevel = v
		return nil
	}},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, _ *rangeSources, v string) error {
		c.MetricsFile = v
		return nil
	}},

	{"VERBOSE", []string{"v"}, func(c *AppConfig, _ *rangeSources, v string) error {
		c.Verbose = parseBoolEnv(v, c.Verbose)
		return nil
	}},
	{"DETAILS", []string{"d", "details"}, func(c *AppConfig, _ *rangeSources, v string) error {
		c.Details = parseBoolEnv(v, c.Details)
		return nil
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, _ *rangeSources, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, _ *rangeSources, v string) error {
		c.TUI = parseBoolEnv(v, c.TUI)
		return nil
	}},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively, and
// returns defaultVal for anything else.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies RANGEPROD_* values for settings not given on the
// command line: CLI flags > positional arguments > environment > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet, sources *rangeSources) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(config, sources, val); err != nil {
				return apperrors.WrapError(err, "%s%s", EnvPrefix, o.envKey)
			}
		}
	}
	return nil
}
