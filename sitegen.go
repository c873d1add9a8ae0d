package sitegen

import (
	"context"
	"io/fs"

	"github.com/spf13/afero"

	staticcmd "github.com/goliatone/go-sitegen/internal/commands/static"
	"github.com/goliatone/go-sitegen/internal/generator"
	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/logging/gologger"
	"github.com/goliatone/go-sitegen/internal/markdown"
	"github.com/goliatone/go-sitegen/internal/theme"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// BuildOptions exports the generator build options for consumers of the
// sitegen package.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build result.
type BuildResult = generator.BuildResult

// RenderedPage exports the per-page build record.
type RenderedPage = generator.RenderedPage

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	contentFS fs.FS
	outputFS  afero.Fs
	provider  interfaces.LoggerProvider
}

// WithContentFS overrides the content filesystem. Tests use fstest.MapFS;
// embedded content works too.
func WithContentFS(filesystem fs.FS) Option {
	return func(o *moduleOptions) {
		o.contentFS = filesystem
	}
}

// WithOutputFS overrides the output filesystem. Defaults to the OS filesystem.
func WithOutputFS(filesystem afero.Fs) Option {
	return func(o *moduleOptions) {
		o.outputFS = filesystem
	}
}

// WithLoggerProvider overrides the logger provider built from the logging
// configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// Module is the top level runtime facade: it wires the Markdown service, the
// theme, and the generator together and exposes build and clean operations
// through the command layer.
type Module struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	markdown  *markdown.Service
	theme     *theme.Theme
	generator *generator.Service
	build     *staticcmd.BuildSiteHandler
	clean     *staticcmd.CleanSiteHandler
}

// New constructs a module from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	provider := options.provider
	if provider == nil {
		built, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	parseOptions := interfaces.ParseOptions{
		Extensions:   cfg.Markdown.Extensions,
		HardWraps:    cfg.Markdown.HardWraps,
		SafeMode:     cfg.Markdown.SafeMode,
		TOCBaseLevel: cfg.Markdown.TOCBaseLevel,
	}
	markdownCfg := markdown.Config{
		BasePath:  cfg.Content.Dir,
		Pattern:   cfg.Content.Pattern,
		Recursive: cfg.Content.Recursive,
		Parser:    parseOptions,
	}

	var source *markdown.Service
	if options.contentFS != nil {
		markdownCfg.BasePath = ""
		source = markdown.NewServiceWithFS(options.contentFS, markdownCfg, nil)
	} else {
		built, err := markdown.NewService(markdownCfg, nil)
		if err != nil {
			return nil, err
		}
		source = built
	}

	th, err := theme.Load(theme.Config{
		Path:              cfg.Theme.Path,
		Name:              cfg.Theme.Name,
		Variant:           cfg.Theme.Variant,
		CSSVariablePrefix: cfg.Theme.CSSVariablePrefix,
	})
	if err != nil {
		return nil, err
	}

	gen, err := generator.NewService(generator.Config{
		OutputDir:           cfg.Generator.OutputDir,
		BaseURL:             cfg.Site.BaseURL,
		Subpath:             cfg.Site.Subpath,
		BlogTitle:           cfg.Site.Title,
		BlogDescription:     cfg.Site.Description,
		BlogAuthor:          cfg.Site.Author,
		Language:            cfg.Site.Language,
		StaticDir:           cfg.Generator.StaticDir,
		CNAMEFile:           cfg.Generator.CNAMEFile,
		Workers:             cfg.Generator.Workers,
		Incremental:         cfg.Generator.Incremental,
		GenerateSitemap:     cfg.Generator.Sitemap,
		GenerateRobots:      cfg.Generator.Robots,
		GenerateFeed:        cfg.Generator.Feeds,
		IndexPageSize:       cfg.Generator.IndexPageSize,
		FeedSize:            cfg.Generator.FeedSize,
		TimezoneOffsetHours: cfg.Generator.TimezoneOffsetHours,
	}, generator.Dependencies{
		Source: source,
		Theme:  th,
		Logger: logging.GeneratorLogger(provider),
		Output: options.outputFS,
	})
	if err != nil {
		return nil, err
	}

	commandLogger := logging.CommandsLogger(provider)

	return &Module{
		cfg:       cfg,
		provider:  provider,
		markdown:  source,
		theme:     th,
		generator: gen,
		build:     staticcmd.NewBuildSiteHandler(gen, commandLogger),
		clean:     staticcmd.NewCleanSiteHandler(gen, commandLogger),
	}, nil
}

// Build renders the site and returns the build report.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	var result *BuildResult
	cmd := staticcmd.BuildSiteCommand{
		Slugs:  opts.Slugs,
		Force:  opts.Force,
		DryRun: opts.DryRun,
		ResultCallback: func(env staticcmd.ResultEnvelope) {
			result = env.Result
		},
	}
	if err := m.build.Execute(ctx, cmd); err != nil {
		return result, err
	}
	return result, nil
}

// Clean removes the generated output tree.
func (m *Module) Clean(ctx context.Context) error {
	return m.clean.Execute(ctx, staticcmd.CleanSiteCommand{})
}

// Markdown exposes the content loading service.
func (m *Module) Markdown() *markdown.Service {
	return m.markdown
}

// Theme exposes the loaded theme.
func (m *Module) Theme() *theme.Theme {
	return m.theme
}

// Generator exposes the build pipeline for advanced integrations.
func (m *Module) Generator() *generator.Service {
	return m.generator
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch cfg.Provider {
	case "noop":
		return noopProvider{}, nil
	default:
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
