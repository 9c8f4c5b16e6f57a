package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	usage = `til
Usage:
	til [new] [flags]      - create today's entry at <root>/YYYY/MM/MMDD.md (overwrites)
	til path [flags]       - print the entry path without writing it
	til headings [file]    - list the headings in an entry
	til check [file]       - verify an entry has the date heading and all sections
	til show [file]        - print an entry, reformatted
	til ast [file]         - dump the parsed markdown tree
	til config             - print config variables
	til help               - print this message

Flags:
	-root <dir>            entry root (default $TIL_ROOT, then root in ~/.til.toml, then .)
	-date YYYY-MM-DD       date the entry instead of today
	-log-level <level>     debug|info|warn|error (default warn)
`
)

var errUsage = errors.New("usage error")

func main() {
	cmd, args := "new", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}
	if err := run(cmd, args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error handling [%s]: %v\n", cmd, err)
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cmd string, args []string, stdout, stderr io.Writer) error {
	if cmd == "help" {
		fmt.Fprint(stdout, usage)
		return nil
	}
	takesFile, ok := commands[cmd]
	if !ok {
		return fmt.Errorf("%w: unrecognised subcommand %q", errUsage, cmd)
	}

	c, err := parseFlags(cmd, args, takesFile)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, usage)
		return nil
	}
	if err != nil {
		return err
	}
	setupLogging(stderr, c.logLevel)

	switch cmd {
	case "new":
		return newEntry(stdout, c)
	case "path":
		return printPath(stdout, c)
	case "headings":
		return withEntry(c, func(e entry) error {
			printHeadings(stdout, e)
			return nil
		})
	case "check":
		return checkFile(stdout, c)
	case "show":
		return withEntry(c, func(e entry) error {
			return renderMarkdown(stdout, e)
		})
	case "ast":
		return withEntry(c, func(e entry) error {
			printAST(stdout, e.node)
			return nil
		})
	default:
		return printConfig(stdout, c)
	}
}

// commands maps each subcommand to whether it takes an entry file argument.
var commands = map[string]bool{
	"new":      false,
	"path":     false,
	"config":   false,
	"headings": true,
	"check":    true,
	"show":     true,
	"ast":      true,
}

type cmdFlags struct {
	root     string
	date     string
	logLevel slog.Level
	file     string
}

func parseFlags(name string, args []string, takesFile bool) (*cmdFlags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	c := &cmdFlags{}
	var level string
	fs.StringVar(&c.root, "root", "", "Entry root directory")
	fs.StringVar(&c.date, "date", "", "Entry date, YYYY-MM-DD")
	fs.StringVar(&level, "log-level", "warn", "Log level: debug|info|warn|error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	c.logLevel = lvl

	maxArgs := 0
	if takesFile {
		maxArgs = 1
	}
	if fs.NArg() > maxArgs {
		return nil, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args()[maxArgs:])
	}
	if fs.NArg() == 1 {
		c.file = fs.Arg(0)
	}
	return c, nil
}

func (c *cmdFlags) day() (time.Time, error) {
	if c.date == "" {
		return now(), nil
	}
	return parseDay(c.date)
}

// target resolves the entry file a command works on: the explicit file
// argument, else the entry for the requested day under the root.
func (c *cmdFlags) target() (string, error) {
	if c.file != "" {
		return c.file, nil
	}
	cfg, err := loadConfig(c.root)
	if err != nil {
		return "", err
	}
	day, err := c.day()
	if err != nil {
		return "", err
	}
	return getEntryFilename(cfg.Root, day), nil
}

func newEntry(w io.Writer, c *cmdFlags) error {
	cfg, err := loadConfig(c.root)
	if err != nil {
		return err
	}
	day, err := c.day()
	if err != nil {
		return err
	}
	_, err = createEntry(w, cfg.Root, day)
	return err
}

func printPath(w io.Writer, c *cmdFlags) error {
	f, err := c.target()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, f)
	return nil
}

func withEntry(c *cmdFlags, fn func(e entry) error) error {
	f, err := c.target()
	if err != nil {
		return err
	}
	e, err := parseFile(f)
	if err != nil {
		return err
	}
	return fn(e)
}

func checkFile(w io.Writer, c *cmdFlags) error {
	f, err := c.target()
	if err != nil {
		return err
	}
	b, err := os.ReadFile(f)
	if err != nil {
		return err
	}
	day, err := checkEntry(b)
	if err != nil {
		return fmt.Errorf("%s: %w", f, err)
	}
	if c.file == "" {
		requested, err := c.day()
		if err != nil {
			return err
		}
		if got, want := day.Format(dateLayout), requested.Format(dateLayout); got != want {
			return fmt.Errorf("%s: dated %s, want %s", f, got, want)
		}
	}
	fmt.Fprintf(w, "ok: %s (%s)\n", f, day.Format(dateLayout))
	return nil
}

func printConfig(w io.Writer, c *cmdFlags) error {
	cfg, err := loadConfig(c.root)
	if err != nil {
		return err
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(b))
	return nil
}
