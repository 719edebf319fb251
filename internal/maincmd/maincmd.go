// Package maincmd implements the shadowjs command line: read a file, run it
// through lang/engine, and report the result.
package maincmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mna/mainer"

	"github.com/shadowbrowser/shadow.js/lang/engine"
)

const binName = "shadowjs"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <file>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <file>
       %[1]s -h|--help
       %[1]s -v|--version

Reads <file> into memory and evaluates it as shadow.js source.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --debug                   Dump the parsed tree and trace each
                                 executed instruction to stderr.
       --bench                   Print the program's wall-clock execution
                                 time to stderr after it runs.
`, binName)
)

// Cmd is the shadowjs command's flag and argument target, parsed by
// mainer.Parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Debug   bool `flag:"debug"`
	Bench   bool `flag:"bench"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

// Validate requires exactly one file argument, unless -h/-v was given.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 1 {
		return fmt.Errorf("expected exactly one file argument, got %d", len(c.args))
	}
	return nil
}

// Main parses flags, then either prints help/version or runs the named
// file.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.run(ctx, stdio, c.args[0]); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	return mainer.Success
}

func (c *Cmd) run(ctx context.Context, stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	e := engine.New()
	e.SetDebug(c.Debug)

	start := time.Now()
	err = e.Eval(ctx, src, stdio.Stdout, stdio.Stderr)
	elapsed := time.Since(start)

	if c.Bench {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, formatElapsed(elapsed))
	}
	return err
}

// formatElapsed renders d in whichever of ns/µs/ms/s keeps the mantissa
// closest to a human-readable single-digit-to-three-digit range, the way a
// benchmark reporter scales its unit rather than always printing raw
// nanoseconds.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.3fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.3fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
}
