// Package cli implements the jun command line: reading JUN documents,
// decoding them with the configured dialect and writing the result of one
// command.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/tidwall/gjson"

	"github.com/mcncl/jun/internal/analyzer"
	"github.com/mcncl/jun/internal/config"
	"github.com/mcncl/jun/internal/errors"
	"github.com/mcncl/jun/internal/formatter"
	"github.com/mcncl/jun/internal/generator"
	"github.com/mcncl/jun/internal/models"
	"github.com/mcncl/jun/internal/node"
	"github.com/mcncl/jun/internal/parser"
	"github.com/mcncl/jun/internal/schema"
)

// Version of the jun binary, overridden at build time with -ldflags.
var Version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `help:"Path to a config file. Defaults to the nearest .jun.yml, .jun.yaml or .jun.toml." short:"c" type:"path"`
	Dialect  string `help:"Dialect to decode with: poc, jun-1.0 or jun-1.1." short:"D"`
	MaxDepth int    `help:"Maximum tree depth accepted when decoding." name:"max-depth"`
	Debug    bool   `help:"Enable debug logging." short:"d"`
}

// InputFlags select where a document is read from.
type InputFlags struct {
	Input string `help:"Path to input document. Files ending in .yaml or .yml are read as YAML. If not specified, reads from stdin." short:"i" type:"path"`
	YAML  bool   `help:"Read stdin as YAML." name:"yaml"`
}

// OutputFlags select where a result is written.
type OutputFlags struct {
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
}

// CLI is the kong command tree.
type CLI struct {
	Globals

	Fmt     FmtCmd     `cmd:"" help:"Decode a document and write it back in canonical form."`
	Check   CheckCmd   `cmd:"" help:"Report whether a document decodes."`
	Stats   StatsCmd   `cmd:"" help:"Summarize the tree of a document."`
	Swift   SwiftCmd   `cmd:"" help:"Generate a SwiftUI view from a document."`
	Schema  SchemaCmd  `cmd:"" help:"Print the JSON Schema of a dialect."`
	Get     GetCmd     `cmd:"" help:"Query the raw document with a gjson path."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Env is what a command runs against: resolved settings and the streams of
// the process.
type Env struct {
	Config  *config.Config
	Dialect *node.Dialect
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// exitCode carries a kong exit request (help output) out of Parse.
type exitCode int

// Execute parses args and runs the selected command.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	var app CLI
	k, err := kong.New(&app,
		kong.Name("jun"),
		kong.Description("Decode, check and convert JUN (JSON UI Notation) documents."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitCode(code)) }),
	)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			if code != 0 {
				err = fmt.Errorf("exit status %d", code)
			}
		}
	}()

	kctx, err := k.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(app.Globals)
	if err != nil {
		return err
	}
	dialect, err := cfg.ResolveDialect()
	if err != nil {
		return errors.NewConfigError("invalid dialect", err)
	}

	logger := newLogger(stderr, levelFor(cfg.Dev.Debug))
	logger.Debug("configuration loaded", "dialect", dialect.Name(), "maxDepth", cfg.MaxDepth)

	ctx := withLogger(context.Background(), logger)
	kctx.BindTo(ctx, (*context.Context)(nil))
	return kctx.Run(&Env{
		Config:  cfg,
		Dialect: dialect,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
	})
}

// loadConfig applies the flags over the config file, if any
func loadConfig(g Globals) (*config.Config, error) {
	path := g.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(path, g.Dialect, g.MaxDepth, g.Debug)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

// readDocument reads the input document. Raw nesting is bounded by the
// configured depth so runaway input fails before decoding.
func (e *Env) readDocument(ctx context.Context, in InputFlags) (models.Document, error) {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)
	nesting := parser.WithMaxNesting(node.NestingLimit(e.Config.MaxDepth))

	if in.Input != "" {
		doc, err := parser.ParseFile(in.Input, nesting)
		if err != nil {
			return models.Document{}, err
		}
		p.done("document read", "file", in.Input, "bytes", len(doc.Raw))
		return doc, nil
	}

	if f, ok := e.Stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return models.Document{}, errors.NewInputError("failed to access stdin", err)
		}
		if info.Mode()&os.ModeCharDevice != 0 {
			return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(e.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	var doc models.Document
	if in.YAML {
		doc, err = parser.ParseYAML(data)
	} else {
		doc, err = parser.ParseBytes(data, nesting)
	}
	if err != nil {
		return models.Document{}, err
	}
	p.done("document read", "source", "stdin", "bytes", len(data))
	return doc, nil
}

// decode reads the input document and assembles its tree
func (e *Env) decode(ctx context.Context, in InputFlags) (node.Node, error) {
	doc, err := e.readDocument(ctx, in)
	if err != nil {
		return node.Node{}, err
	}

	p := newProgress(loggerFromContext(ctx))
	tree, err := node.Decode(doc.Root, node.WithDialect(e.Dialect), node.WithMaxDepth(e.Config.MaxDepth))
	if err != nil {
		return node.Node{}, errors.NewDecodeError("failed to decode document", err)
	}
	p.done("tree decoded", "dialect", e.Dialect.Name(), "root", tree.Variant())
	return tree, nil
}

// write sends data to the output file, or stdout when none is set
func (e *Env) write(ctx context.Context, out OutputFlags, data []byte) error {
	if out.Output == "" {
		if _, err := e.Stdout.Write(data); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	if err := os.WriteFile(out.Output, data, 0644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", out.Output), err)
	}
	loggerFromContext(ctx).Debug("output written", "file", out.Output, "bytes", len(data))
	printSuccess(e.Stderr, "written")
	printFile(e.Stderr, out.Output)
	return nil
}

// FmtCmd re-encodes a document canonically.
type FmtCmd struct {
	InputFlags
	OutputFlags

	To      string `help:"Dialect to encode with. Defaults to the decoding dialect."`
	Compact bool   `help:"Write the document on a single line."`
}

// Run decodes the input and writes its canonical encoding
func (c *FmtCmd) Run(ctx context.Context, env *Env) error {
	tree, err := env.decode(ctx, c.InputFlags)
	if err != nil {
		return err
	}

	target := env.Dialect
	if c.To != "" {
		if target, err = node.DialectByName(c.To); err != nil {
			return errors.NewConfigError("invalid target dialect", err)
		}
	}

	f := formatter.NewFormatterWithConfig(env.Config)
	if c.Compact {
		f = formatter.NewFormatterWithConfig(&config.Config{Output: config.OutputConfig{Compact: true}})
	}

	p := newProgress(loggerFromContext(ctx))
	data, err := f.FormatNode(tree, target)
	if err != nil {
		return errors.NewEncodeError(fmt.Sprintf("failed to encode document as %s", target.Name()), err)
	}
	p.done("tree encoded", "dialect", target.Name())

	return env.write(ctx, c.OutputFlags, data)
}

// CheckCmd validates a document.
type CheckCmd struct {
	InputFlags
}

// Run decodes the input and reports the outcome
func (c *CheckCmd) Run(ctx context.Context, env *Env) error {
	tree, err := env.decode(ctx, c.InputFlags)
	if err != nil {
		printFailure(env.Stdout, "invalid %s document", env.Dialect.Name())
		return err
	}

	count := 0
	tree.Walk(func(node.Node, int) bool {
		count++
		return true
	})
	printSuccess(env.Stdout, "valid %s document (%d nodes)", env.Dialect.Name(), count)
	return nil
}

// StatsCmd summarizes a document.
type StatsCmd struct {
	InputFlags
	OutputFlags

	JSON bool `help:"Write the statistics as JSON." name:"json"`
}

// Run analyzes the input and prints the statistics
func (c *StatsCmd) Run(ctx context.Context, env *Env) error {
	doc, err := env.readDocument(ctx, c.InputFlags)
	if err != nil {
		return err
	}

	p := newProgress(loggerFromContext(ctx))
	stats, err := analyzer.NewAnalyzerWithConfig(env.Config).AnalyzeDocument(doc.Root)
	if err != nil {
		return errors.NewDecodeError("failed to decode document", err)
	}
	p.done("tree analyzed", "nodes", stats.Nodes)

	if c.JSON {
		data, err := formatter.NewFormatterWithConfig(env.Config).FormatValue(stats)
		if err != nil {
			return errors.NewEncodeError("failed to encode statistics", err)
		}
		return env.write(ctx, c.OutputFlags, data)
	}

	var buf bytes.Buffer
	printStats(&buf, env.Dialect.Name(), stats)
	return env.write(ctx, c.OutputFlags, buf.Bytes())
}

// SwiftCmd generates SwiftUI source.
type SwiftCmd struct {
	InputFlags
	OutputFlags

	ViewName string `help:"Name of the generated view struct." name:"view-name" short:"n"`
}

// Run decodes the input and writes the generated view
func (c *SwiftCmd) Run(ctx context.Context, env *Env) error {
	tree, err := env.decode(ctx, c.InputFlags)
	if err != nil {
		return err
	}

	cfg := *env.Config
	if c.ViewName != "" {
		cfg.Swift.ViewName = c.ViewName
	}

	p := newProgress(loggerFromContext(ctx))
	code, err := generator.NewGeneratorWithConfig(&cfg).GenerateSwiftUI(tree)
	if err != nil {
		return errors.NewEncodeError("failed to generate SwiftUI view", err)
	}
	p.done("view generated", "view", cfg.ViewName())

	return env.write(ctx, c.OutputFlags, []byte(code))
}

// SchemaCmd prints the JSON Schema of the selected dialect.
type SchemaCmd struct {
	OutputFlags
}

// Run writes the schema document
func (c *SchemaCmd) Run(ctx context.Context, env *Env) error {
	data, err := formatter.NewFormatterWithConfig(env.Config).FormatValue(schema.ForDialect(env.Dialect))
	if err != nil {
		return errors.NewEncodeError("failed to encode schema", err)
	}
	return env.write(ctx, c.OutputFlags, data)
}

// GetCmd queries the raw document.
type GetCmd struct {
	InputFlags

	Path string `arg:"" help:"gjson path, e.g. children.0.properties.content or children.#.type."`
}

// Run prints the value at Path. Objects and arrays are formatted as JSON,
// everything else is printed as text.
func (c *GetCmd) Run(ctx context.Context, env *Env) error {
	doc, err := env.readDocument(ctx, c.InputFlags)
	if err != nil {
		return err
	}

	result := gjson.GetBytes(doc.Raw, c.Path)
	if !result.Exists() {
		return errors.NewInputError(fmt.Sprintf("nothing at path '%s'", c.Path), errors.ErrPathNotFound)
	}

	if result.IsObject() || result.IsArray() {
		data, err := formatter.NewFormatterWithConfig(env.Config).Format([]byte(result.Raw))
		if err != nil {
			return errors.NewOutputError("failed to format result", err)
		}
		return env.write(ctx, OutputFlags{}, data)
	}
	return env.write(ctx, OutputFlags{}, []byte(result.String()+"\n"))
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run prints the version line
func (c *VersionCmd) Run(env *Env) error {
	_, err := fmt.Fprintf(env.Stdout, "jun version %s\n", Version)
	return err
}

