// Package config holds process-level configuration for the solver
// binaries. Flags can also be provided through the environment
// (C4SOLVE_TIME_LIMIT, etc) courtesy of namsral/flag.
package config

import (
	"time"

	"github.com/namsral/flag"
)

type Config struct {
	// TimeLimit is the wall-clock budget per solve; 0 means unbounded.
	TimeLimit time.Duration
	// DepthLimit is the search depth budget; 0 means unbounded.
	DepthLimit int

	Debug       bool
	Interactive bool
	ProfilePath string
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSetWithEnvPrefix("c4solve", "C4SOLVE", flag.ContinueOnError)
	fs.DurationVar(&c.TimeLimit, "time-limit", 5*time.Second, "wall-clock budget per solve; 0 for unbounded")
	fs.IntVar(&c.DepthLimit, "depth-limit", 10, "search depth budget; 0 for unbounded")
	fs.BoolVar(&c.Debug, "debug", false, "debug logging")
	fs.BoolVar(&c.Interactive, "interactive", false, "start the interactive shell instead of reading records from stdin")
	fs.StringVar(&c.ProfilePath, "profilepath", "", "path for CPU profile")
	return fs.Parse(args)
}
