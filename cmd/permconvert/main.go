package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"permission-wizard/internal/catalog"
	"permission-wizard/internal/generator"
	"permission-wizard/internal/model"
	"permission-wizard/internal/parser"
)

type options struct {
	input      string
	template   string
	target     string
	format     string
	serverType string
	plugins    []string
	outDir     string
	verbose    bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := createLogger(opts.verbose).Sugar()
	defer logger.Sync()

	if err := run(logger, opts, os.Stdout); err != nil {
		logger.Errorw("conversion failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("permconvert", pflag.ContinueOnError)
	fs.StringVarP(&opts.input, "input", "i", "", "Permission config to convert (.yml, .yaml or .json)")
	fs.StringVar(&opts.template, "template", "", "Start from the rank template of a server type instead of an input file")
	fs.StringVarP(&opts.target, "to", "t", "", "Target permission plugin (luckperms, groupmanager, permissionsex), defaults to the detected one")
	fs.StringVarP(&opts.format, "format", "f", string(model.FormatYAML), "Output format (yaml, commands, json)")
	fs.StringVarP(&opts.serverType, "server-type", "s", "", "Server type used to filter catalog permissions, defaults to the template's or survival")
	fs.StringSliceVarP(&opts.plugins, "plugins", "p", nil, "Plugins to grant catalog permissions for, defaults to the detected plugins")
	fs.StringVarP(&opts.outDir, "out", "o", "", "Directory to write the generated file to, stdout when empty")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if (opts.input == "") == (opts.template == "") {
		return options{}, errors.New("exactly one of --input or --template is required")
	}
	return opts, nil
}

func createLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func run(logger *zap.SugaredLogger, opts options, stdout io.Writer) error {
	session, err := loadSession(logger, opts)
	if err != nil {
		return err
	}

	if opts.target != "" {
		dialect := model.Dialect(strings.ToLower(opts.target))
		if !dialect.Valid() {
			return fmt.Errorf("unknown target plugin %s", opts.target)
		}
		session.PermissionPlugin = dialect
	}
	if len(opts.plugins) > 0 {
		session.SelectedPlugins = opts.plugins
	}
	if opts.serverType != "" {
		session.ServerType = model.ServerType(strings.ToLower(opts.serverType))
		if !session.ServerType.Valid() {
			return fmt.Errorf("unknown server type %s", opts.serverType)
		}
	}
	if session.ServerType == "" {
		session.ServerType = model.ServerSurvival
	}

	out, err := generator.New(catalog.Default()).Generate(model.Format(strings.ToLower(opts.format)), generator.OptionsFromSession(session))
	if err != nil {
		return err
	}
	for _, advisory := range out.Advisories {
		logger.Warnw("advisory", "message", advisory)
	}
	logger.Infow("generated config", "dialect", out.Dialect, "format", out.Format, "ranks", len(session.Ranks))

	if opts.outDir == "" {
		_, err := io.WriteString(stdout, out.Content)
		return err
	}

	dest := filepath.Join(opts.outDir, out.Path, out.Filename)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, []byte(out.Content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	fmt.Fprintln(stdout, dest)
	return nil
}

func loadSession(logger *zap.SugaredLogger, opts options) (model.Session, error) {
	if opts.template != "" {
		tmpl, err := catalog.TemplateFor(model.ServerType(strings.ToLower(opts.template)))
		if err != nil {
			return model.Session{}, err
		}
		return tmpl.Session(), nil
	}

	content, err := os.ReadFile(opts.input)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to read %s: %w", opts.input, err)
	}

	parsed, err := parser.ParseFile(filepath.Base(opts.input), string(content))
	if err != nil {
		return model.Session{}, err
	}
	logger.Infow("parsed config", "dialect", parsed.PluginType, "ranks", len(parsed.Ranks),
		"detectedPlugins", parsed.DetectedPlugins)

	selected := make([]string, 0, len(parsed.DetectedPlugins))
	for _, id := range parsed.DetectedPlugins {
		if catalog.Default().Has(id) {
			selected = append(selected, id)
		}
	}

	return model.Session{
		SelectedPlugins:  selected,
		Ranks:            parser.ConvertToRanks(parsed.Ranks),
		PermissionPlugin: parsed.PluginType,
	}, nil
}
