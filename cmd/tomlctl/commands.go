package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/stellartoml/internal/config"
	"github.com/danmuck/stellartoml/internal/logging"
	"github.com/danmuck/stellartoml/internal/manifest"
	"github.com/danmuck/stellartoml/internal/observability"
	"github.com/danmuck/stellartoml/internal/render"
	"github.com/danmuck/stellartoml/internal/resolve"
	"github.com/danmuck/stellartoml/internal/server"
	"github.com/rs/zerolog/log"
)

// commonFlags are shared by the commands that produce a Manifest.
type commonFlags struct {
	configPath string
	format     string
	policy     string
	parser     string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "config file path (defaults are used when empty)")
	fs.StringVar(&f.format, "format", "json", "output format: json|yaml")
	fs.StringVar(&f.policy, "policy", "", "binding policy: abort|skip (overrides config)")
	fs.StringVar(&f.parser, "parser", "", "document parser: burntsushi|go-toml (overrides config)")
}

func (f *commonFlags) load() (config.Config, render.Format, error) {
	format, err := render.ParseFormat(f.format)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg := config.Default()
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
		if err != nil {
			return config.Config{}, "", err
		}
	}
	if f.policy != "" {
		cfg.Policy = f.policy
	}
	if f.parser != "" {
		cfg.Parser = f.parser
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, "", err
	}
	return cfg, format, nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// singleArg parses args and returns the one positional argument.
func singleArg(fs *flag.FlagSet, args []string, what string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one %s", fs.Name(), what)
	}
	return fs.Arg(0), nil
}

func runResolve(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("resolve", stderr)
	var flags commonFlags
	flags.register(fs)
	insecure := fs.Bool("insecure", false, "fetch over plain http")
	domain, err := singleArg(fs, args, "domain")
	if err != nil {
		return err
	}
	cfg, format, err := flags.load()
	if err != nil {
		return err
	}

	r := server.NewResolver(cfg, log.Logger)
	var m manifest.Manifest
	if *insecure {
		address, err := resolve.InsecureAddress(domain)
		if err != nil {
			return err
		}
		m, err = r.ResolveAddress(ctx, address)
		if err != nil {
			return err
		}
	} else {
		m, err = r.Resolve(ctx, domain)
		if err != nil {
			return err
		}
	}
	return emit(stdout, stderr, format, m)
}

func runFetch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("fetch", stderr)
	var flags commonFlags
	flags.register(fs)
	address, err := singleArg(fs, args, "url")
	if err != nil {
		return err
	}
	cfg, format, err := flags.load()
	if err != nil {
		return err
	}
	m, err := server.NewResolver(cfg, log.Logger).ResolveURL(ctx, address)
	if err != nil {
		return err
	}
	return emit(stdout, stderr, format, m)
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("check", stderr)
	var flags commonFlags
	flags.register(fs)
	path, err := singleArg(fs, args, "file")
	if err != nil {
		return err
	}
	cfg, format, err := flags.load()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	m, err := manifest.Decode(data,
		manifest.WithParser(cfg.ParserImpl()),
		manifest.WithPolicy(cfg.BindPolicy()),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return emit(stdout, stderr, format, m)
}

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs := newFlagSet("serve", stderr)
	configPath := fs.String("config", "", "config file path (defaults are used when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}
	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	logger := observability.InitLogger("tomlctl", level)
	return server.New(cfg, nil, logger).Run(ctx)
}

func runInitConfig(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("init-config", stderr)
	output := fs.String("output", "tomlctl.toml", "output path for the config template")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.WriteTemplate(*output, *force); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote config template to %s\n", *output)
	return nil
}

// emit renders m to stdout and reports skipped elements on stderr.
func emit(stdout, stderr io.Writer, format render.Format, m manifest.Manifest) error {
	for _, skipped := range m.Skipped {
		fmt.Fprintf(stderr, "tomlctl: skipped %s: %v\n", skipped.Path, skipped.Err)
	}
	return render.Write(stdout, format, m)
}
