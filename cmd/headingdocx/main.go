// Command headingdocx lists the heading outline of Word documents and
// rebuilds documents from their heading-delimited sections.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tsawler/headingdocx"
	"github.com/tsawler/headingdocx/export"
	"github.com/tsawler/headingdocx/format"
	"github.com/tsawler/headingdocx/internal/config"
	"github.com/tsawler/headingdocx/internal/logging"
	"github.com/tsawler/headingdocx/model"
)

const version = "0.4.0"

// CLI defines the command-line interface for headingdocx.
type CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"YAML configuration file" type:"existingfile"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error (overrides config)"`
	LogFormat string `name:"log-format" help:"Log format: text or json (overrides config)"`

	Headings   HeadingsCmd   `cmd:"" help:"List headings with their levels"`
	Paragraphs ParagraphsCmd `cmd:"" help:"Print the verbatim markup of every paragraph"`
	Rebuild    RebuildCmd    `cmd:"" help:"Write a document containing the named sections in the given order"`
	Replace    ReplaceCmd    `cmd:"" help:"Apply a regular expression to the document body"`
	Detect     DetectCmd     `cmd:"" help:"Report the container format of a file"`
	Version    VersionCmd    `cmd:"" help:"Print version information"`
}

// env is what every command runs with.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
}

// HeadingsCmd lists headings.
type HeadingsCmd struct {
	File   string `arg:"" help:"Word document" type:"existingfile"`
	Format string `name:"format" short:"f" help:"Output format: text, json, markdown, html (default from config)"`
}

func (c *HeadingsCmd) Run(e *env) error {
	name := c.Format
	if name == "" {
		name = e.cfg.Headings.Format
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	headings, err := headingdocx.Open(c.File).WithLogger(e.logger).Headings()
	if err != nil {
		return err
	}
	return export.Write(e.stdout, headings, f)
}

// ParagraphsCmd prints paragraph markup, one fragment per line.
type ParagraphsCmd struct {
	File string `arg:"" help:"Word document" type:"existingfile"`
}

func (c *ParagraphsCmd) Run(e *env) error {
	return headingdocx.Open(c.File).WithLogger(e.logger).ParagraphMarkup(func(markup string) error {
		_, err := fmt.Fprintln(e.stdout, markup)
		return err
	})
}

// RebuildCmd reorders sections.
type RebuildCmd struct {
	File          string   `arg:"" help:"Word document" type:"existingfile"`
	Out           string   `name:"out" short:"o" help:"Output path" required:"" type:"path"`
	Title         []string `name:"title" short:"t" help:"Section title, repeatable, in output order"`
	TitlesJSON    string   `name:"titles-json" help:"JSON array of titles, as strings or {\"text\":...} objects"`
	IncludeTables bool     `name:"include-tables" help:"Keep tables inside their sections"`
}

func (c *RebuildCmd) Run(e *env) error {
	titles := append([]string(nil), c.Title...)
	if c.TitlesJSON != "" {
		parsed, err := parseTitles([]byte(c.TitlesJSON))
		if err != nil {
			return err
		}
		titles = append(titles, parsed...)
	}
	if len(titles) == 0 {
		return errors.New("no titles given: use --title or --titles-json")
	}

	doc := headingdocx.Open(c.File).WithLogger(e.logger)
	if c.IncludeTables || e.cfg.Rebuild.IncludeTables {
		doc = doc.IncludeTables()
	}

	warnings, err := doc.Rebuild(titles, c.Out)
	for _, w := range warnings {
		e.logger.Warn(w.Message, "file", c.File)
	}
	return err
}

// parseTitles accepts a JSON array whose items are either strings or heading
// objects as printed by "headings --format json".
func parseTitles(data []byte) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("titles JSON must be an array: %w", err)
	}

	titles := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			titles = append(titles, s)
			continue
		}
		var h model.HeadingRecord
		if err := json.Unmarshal(item, &h); err != nil {
			return nil, fmt.Errorf("titles JSON item %d: want a string or {\"text\": ...}", i)
		}
		titles = append(titles, h.Text)
	}
	return titles, nil
}

// ReplaceCmd rewrites the body with a regular expression.
type ReplaceCmd struct {
	File    string `arg:"" help:"Word document" type:"existingfile"`
	Pattern string `name:"pattern" short:"p" help:"Regular expression (Go syntax)" required:""`
	Repl    string `name:"repl" short:"r" help:"Replacement; $1 expands to the first group"`
	Out     string `name:"out" short:"o" help:"Output path" required:"" type:"path"`
}

func (c *ReplaceCmd) Run(e *env) error {
	return headingdocx.Open(c.File).WithLogger(e.logger).Replace(c.Pattern, c.Repl, c.Out)
}

// DetectCmd reports the container format.
type DetectCmd struct {
	File string `arg:"" help:"File to inspect" type:"existingfile"`
}

func (c *DetectCmd) Run(e *env) error {
	f, err := format.DetectFile(c.File)
	if err != nil {
		return err
	}
	word := "no"
	if f.IsWord() {
		word = "yes"
	}
	_, err = fmt.Fprintf(e.stdout, "%s\t%s\tword=%s\n", c.File, f, word)
	return err
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	_, err := fmt.Fprintf(e.stdout, "headingdocx version %s\n", version)
	return err
}

// newEnv loads configuration and applies flag overrides.
func (cli *CLI) newEnv(stdout, stderr io.Writer) (*env, error) {
	cfg := config.Default()
	if cli.Config != "" {
		loaded, err := config.LoadFile(cli.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logFormat, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:    cfg,
		logger: logging.Init(stderr, level, logFormat),
		stdout: stdout,
	}, nil
}

// run parses args and executes the selected command.
func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("headingdocx"),
		kong.Description("Heading outlines and section reordering for Word documents"),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	e, err := cli.newEnv(stdout, stderr)
	if err != nil {
		return err
	}
	return ctx.Run(e)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "headingdocx: %s\n", strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}
