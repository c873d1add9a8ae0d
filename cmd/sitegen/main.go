package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	sitegen "github.com/goliatone/go-sitegen"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("sitegen: %v", err)
	}
}

func run(args []string) error {
	mode := "build"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		mode = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("sitegen", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	outputDir := fs.String("output-dir", "public", "Directory receiving the generated site")
	staticDir := fs.String("static-dir", "static", "Directory of static files copied into the output")
	themeDir := fs.String("theme-dir", "", "Theme directory overriding the embedded default theme")
	baseURL := fs.String("base-url", "", "Absolute site origin used for canonical URLs, feeds, and sitemap")
	subpath := fs.String("subpath", "", "Optional path prefix when the site lives below the domain root")
	title := fs.String("title", "My Blog", "Site title")
	description := fs.String("description", "", "Site description")
	author := fs.String("author", "", "Site author")
	slugs := fs.String("slugs", "", "Comma separated list of post slugs to rebuild")
	workers := fs.Int("workers", 0, "Number of render workers (0 = number of CPUs)")
	force := fs.Bool("force", false, "Rebuild every page even when unchanged")
	dryRun := fs.Bool("dry-run", false, "Render without writing any artifacts")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (console, json, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := sitegen.DefaultConfig()
	cfg.Site.Title = *title
	cfg.Site.Description = *description
	cfg.Site.Author = *author
	cfg.Site.BaseURL = *baseURL
	cfg.Site.Subpath = *subpath
	cfg.Content.Dir = *contentDir
	cfg.Theme.Path = *themeDir
	cfg.Generator.OutputDir = *outputDir
	cfg.Generator.StaticDir = *staticDir
	cfg.Generator.Workers = *workers
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	module, err := sitegen.New(cfg)
	if err != nil {
		return fmt.Errorf("initialise module: %w", err)
	}

	ctx := context.Background()

	switch mode {
	case "build":
		result, err := module.Build(ctx, sitegen.BuildOptions{
			Force:  *force,
			DryRun: *dryRun,
			Slugs:  splitSlugs(*slugs),
		})
		if err != nil {
			return fmt.Errorf("build site: %w", err)
		}
		if result != nil {
			fmt.Fprintf(os.Stdout, "built %d pages (%d skipped, %d listings, %d stale removed) in %s\n",
				result.PagesBuilt, result.PagesSkipped, result.ListingsBuilt, result.StaleRemoved, result.Duration)
		}
		return nil
	case "clean":
		if err := module.Clean(ctx); err != nil {
			return fmt.Errorf("clean site: %w", err)
		}
		fmt.Fprintln(os.Stdout, "output directory removed")
		return nil
	default:
		return fmt.Errorf("unknown mode %q (expected build or clean)", mode)
	}
}

func splitSlugs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
