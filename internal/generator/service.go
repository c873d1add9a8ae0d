package generator

import (
	"context"
	"errors"
	"fmt"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/internal/theme"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// DocumentSource loads parsed and rendered content documents.
type DocumentSource interface {
	LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error)
}

// Dependencies wires the collaborators the generator needs.
type Dependencies struct {
	Source   DocumentSource
	Theme    *theme.Theme
	Renderer interfaces.TemplateRenderer
	Logger   interfaces.Logger
	// Output receives the generated tree. afero keeps tests hermetic.
	Output afero.Fs
}

// Service builds the static site from content documents.
type Service struct {
	cfg       Config
	deps      Dependencies
	logger    interfaces.Logger
	themeHash string
}

// NewService validates dependencies and constructs a generator.
func NewService(cfg Config, deps Dependencies) (*Service, error) {
	if deps.Source == nil {
		return nil, ErrSourceRequired
	}
	if deps.Theme == nil {
		return nil, ErrRendererRequired
	}
	if deps.Renderer == nil {
		deps.Renderer = deps.Theme.Renderer()
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, ErrOutputRequired
	}
	if deps.Output == nil {
		deps.Output = afero.NewOsFs()
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Service{
		cfg:       cfg,
		deps:      deps,
		logger:    logger,
		themeHash: aggregateFingerprint(deps.Theme.Fingerprint()),
	}, nil
}

// Build renders the whole site. With Incremental enabled, unchanged posts are
// skipped and outputs whose sources moved or disappeared are removed.
func (s *Service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	generatedAt := start.UTC()
	baseDir := s.baseDir()

	docs, err := s.deps.Source.LoadDirectory(ctx, ".", interfaces.LoadOptions{
		Parser: interfaces.ParseOptions{Enhance: true},
	})
	if err != nil {
		return nil, fmt.Errorf("generator: load documents: %w", err)
	}

	posts := make([]*site.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, site.FromDocument(doc, generatedAt))
	}
	collection := site.NewCollection(posts)
	collection.AssignNav()

	result := &BuildResult{DryRun: opts.DryRun}

	writer := newArtifactWriter(s.deps.Output)
	manifest, manifestErr := s.loadManifest(ctx, writer, baseDir)
	if manifestErr != nil {
		s.logger.Warn("manifest unreadable, rebuilding from scratch", "error", manifestErr)
		manifest = newBuildManifest()
	}

	themeFingerprint := s.deps.Theme.Fingerprint()
	force := opts.Force || !s.cfg.Incremental
	if manifest.themeChanged(themeFingerprint) {
		s.logger.Info("theme inputs changed, full rebuild")
		force = true
	}

	cssFilename := s.stylesheetName()
	chrome := pageChrome{
		cssFilename: cssFilename,
		generatedAt: generatedAt,
		buildFooter: footerTimeInfo(generatedAt, s.cfg.tzOffsetHours(), "Build"),
		themeVars:   s.deps.Theme.CSSVariables(),
	}

	renderable, seen := s.selectRenderable(collection, opts)

	var (
		mu       sync.Mutex
		rendered = make([]RenderedPage, 0, len(renderable))
		errs     []error
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		if outcome.err != nil {
			errs = append(errs, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	s.renderAll(ctx, renderable, manifest, force, chrome, collect)

	listingFP := listingFingerprint(listingEntries(collection))
	rebuildListings := force || result.PagesBuilt > 0 || listingFP != manifest.Listing

	if opts.DryRun {
		result.Rendered = rendered
		result.Duration = time.Since(start)
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			return result, errors.Join(errs...)
		}
		return result, nil
	}

	if err := writer.EnsureDir(ctx, baseDir); err != nil {
		return nil, err
	}

	if written, err := s.writeStylesheet(ctx, writer, baseDir); err != nil {
		errs = append(errs, err)
	} else if written != "" {
		result.AssetsBuilt++
	}

	if copied, err := s.copyStatic(ctx, writer, baseDir); err != nil {
		errs = append(errs, err)
	} else {
		result.AssetsBuilt += copied
	}

	if err := s.copyCNAME(ctx, writer, baseDir); err != nil {
		errs = append(errs, err)
	}

	if err := s.persistPages(ctx, writer, rendered); err != nil {
		errs = append(errs, err)
	}

	if rebuildListings {
		built, err := s.writeListings(ctx, writer, baseDir, collection, chrome)
		result.ListingsBuilt += built
		if err != nil {
			errs = append(errs, err)
		}

		if s.cfg.GenerateFeed {
			if err := s.writeFeeds(ctx, writer, baseDir, collection, generatedAt); err != nil {
				errs = append(errs, err)
			}
		}
		if s.cfg.GenerateSitemap {
			if err := s.writeSitemap(ctx, writer, baseDir, collection); err != nil {
				errs = append(errs, err)
			}
		}
		if s.cfg.GenerateRobots {
			if err := s.writeRobots(ctx, writer, baseDir); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if removed, err := s.removeStale(ctx, writer, manifest, seen); err != nil {
		errs = append(errs, err)
	} else {
		result.StaleRemoved = removed
	}

	if len(errs) == 0 {
		s.recordManifest(manifest, collection, rendered, seen, themeFingerprint, listingFP, generatedAt)
		if err := s.persistManifest(ctx, writer, manifest, baseDir); err != nil {
			errs = append(errs, err)
		}
	}

	result.Rendered = rendered
	result.Duration = time.Since(start)
	s.logger.Info("build finished",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"listings_built", result.ListingsBuilt,
		"stale_removed", result.StaleRemoved,
		"duration", result.Duration.String(),
	)
	if len(errs) > 0 {
		result.Errors = append(result.Errors, errs...)
		return result, errors.Join(errs...)
	}
	return result, nil
}

// Clean removes the generated output tree.
func (s *Service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	baseDir := s.baseDir()
	if baseDir == "" || baseDir == "." {
		return ErrOutputRequired
	}
	writer := newArtifactWriter(s.deps.Output)
	return writer.RemoveAll(ctx, baseDir)
}

// selectRenderable picks the documents that get their own page. Posts with the
// hidden flag produce no output at all but still occupy a manifest slot so
// previously published copies get cleaned up.
func (s *Service) selectRenderable(collection *site.Collection, opts BuildOptions) ([]*site.Post, map[string]string) {
	only := map[string]struct{}{}
	for _, slug := range opts.Slugs {
		only[strings.TrimSpace(slug)] = struct{}{}
	}

	seen := map[string]string{}
	var renderable []*site.Post

	for _, post := range collection.All() {
		if post.Kind == site.KindPost && post.Hidden {
			seen[post.SourcePath] = "hidden"
			continue
		}
		seen[post.SourcePath] = post.Link
		if len(only) > 0 {
			if _, ok := only[post.Slug]; !ok {
				continue
			}
		}
		renderable = append(renderable, post)
	}
	return renderable, seen
}

func (s *Service) renderAll(
	ctx context.Context,
	posts []*site.Post,
	manifest *buildManifest,
	force bool,
	chrome pageChrome,
	collect func(renderOutcome),
) {
	render := func(post *site.Post) {
		output := joinOutputPath(s.baseDir(), outputPathForLink(post.Link))
		if !force && manifest.shouldSkipPage(post.SourcePath, s.pageHash(post), output) {
			collect(renderOutcome{
				diagnostic: RenderDiagnostic{
					Slug:    post.Slug,
					Source:  post.SourcePath,
					Route:   internalURL(s.cfg.Subpath, post.Link),
					Skipped: true,
				},
				skipped: true,
			})
			return
		}
		collect(s.renderPost(post, chrome))
	}

	workers := s.effectiveWorkerCount(len(posts))
	if workers <= 1 || len(posts) <= 1 {
		for _, post := range posts {
			if ctx.Err() != nil {
				return
			}
			render(post)
		}
		return
	}

	jobs := make(chan *site.Post)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for post := range jobs {
				if ctx.Err() != nil {
					return
				}
				render(post)
			}
		}()
	}

	for _, post := range posts {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- post:
		}
	}
	close(jobs)
	wg.Wait()
}

func (s *Service) persistPages(ctx context.Context, writer artifactWriter, rendered []RenderedPage) error {
	dirCache := map[string]struct{}{}
	for _, page := range rendered {
		if err := ensureDir(ctx, writer, dirCache, path.Dir(page.Output)); err != nil {
			return err
		}
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:        page.Output,
			Content:     strings.NewReader(page.HTML),
			Size:        int64(len(page.HTML)),
			Category:    categoryPage,
			ContentType: "text/html; charset=utf-8",
			Checksum:    page.Checksum,
		}); err != nil {
			return fmt.Errorf("generator: write page %s: %w", page.Output, err)
		}
	}
	return nil
}

// writeListings regenerates the index, archive, tags index, and per-tag pages.
func (s *Service) writeListings(
	ctx context.Context,
	writer artifactWriter,
	baseDir string,
	collection *site.Collection,
	chrome pageChrome,
) (int, error) {
	built := 0
	dirCache := map[string]struct{}{}

	write := func(rel, html string) error {
		target := joinOutputPath(baseDir, rel)
		if err := ensureDir(ctx, writer, dirCache, path.Dir(target)); err != nil {
			return err
		}
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:        target,
			Content:     strings.NewReader(html),
			Size:        int64(len(html)),
			Category:    categoryListing,
			ContentType: "text/html; charset=utf-8",
			Checksum:    computeHashFromString(html),
		}); err != nil {
			return fmt.Errorf("generator: write listing %s: %w", target, err)
		}
		built++
		return nil
	}

	// Front page.
	indexCtx := s.basePageContext(chrome)
	indexCtx.PageID = "index"
	indexCtx.PageTitle = s.cfg.BlogTitle
	indexCtx.CanonicalURL = canonicalURL(s.cfg.BaseURL, s.cfg.Subpath, "/")
	for _, post := range collection.Index(s.cfg.indexPageSize()) {
		indexCtx.Posts = append(indexCtx.Posts, s.postView(post))
	}
	html, err := s.renderListing(indexCtx)
	if err != nil {
		return built, err
	}
	if err := write("index.html", html); err != nil {
		return built, err
	}

	// Archive.
	archiveCtx := s.basePageContext(chrome)
	archiveCtx.PageID = "archive"
	archiveCtx.PageTitle = "Archive - " + s.cfg.BlogTitle
	archiveCtx.CanonicalURL = canonicalURL(s.cfg.BaseURL, s.cfg.Subpath, "/archive")
	archiveCtx.ContentHTML = toHTML(s.buildArchiveHTML(collection.Archive()))
	html, err = s.renderListing(archiveCtx)
	if err != nil {
		return built, err
	}
	if err := write("archive/index.html", html); err != nil {
		return built, err
	}

	// Tags index.
	groups := collection.Tags()
	tagsCtx := s.basePageContext(chrome)
	tagsCtx.PageID = "tags"
	tagsCtx.PageTitle = "Tags - " + s.cfg.BlogTitle
	tagsCtx.CanonicalURL = canonicalURL(s.cfg.BaseURL, s.cfg.Subpath, "/tags")
	tagsCtx.ContentHTML = toHTML(s.buildTagsListHTML(groups))
	html, err = s.renderListing(tagsCtx)
	if err != nil {
		return built, err
	}
	if err := write("tags/index.html", html); err != nil {
		return built, err
	}

	// One page per tag.
	for _, group := range groups {
		tagCtx := s.basePageContext(chrome)
		tagCtx.PageID = "tag"
		tagCtx.PageTitle = group.Tag.Name + " - " + s.cfg.BlogTitle
		tagCtx.CanonicalURL = canonicalURL(s.cfg.BaseURL, s.cfg.Subpath, "tags/"+group.Tag.Slug)
		tagCtx.ContentHTML = toHTML(s.buildTagPageHTML(group))
		html, err := s.renderListing(tagCtx)
		if err != nil {
			return built, err
		}
		if err := write(path.Join("tags", group.Tag.Slug, "index.html"), html); err != nil {
			return built, err
		}
	}

	return built, nil
}

func (s *Service) writeFeeds(
	ctx context.Context,
	writer artifactWriter,
	baseDir string,
	collection *site.Collection,
	generatedAt time.Time,
) error {
	items := s.buildFeedItems(collection.Visible())

	rss := buildRSSFeed(s.cfg, items, generatedAt)
	if err := writer.WriteFile(ctx, writeFileRequest{
		Path:        joinOutputPath(baseDir, rssFileName),
		Content:     strings.NewReader(rss),
		Size:        int64(len(rss)),
		Category:    categoryFeed,
		ContentType: "application/rss+xml",
		Checksum:    computeHashFromString(rss),
	}); err != nil {
		return fmt.Errorf("generator: write rss: %w", err)
	}

	atom := buildAtomFeed(s.cfg, items, generatedAt)
	if err := writer.WriteFile(ctx, writeFileRequest{
		Path:        joinOutputPath(baseDir, "feed.atom.xml"),
		Content:     strings.NewReader(atom),
		Size:        int64(len(atom)),
		Category:    categoryFeed,
		ContentType: "application/atom+xml",
		Checksum:    computeHashFromString(atom),
	}); err != nil {
		return fmt.Errorf("generator: write atom: %w", err)
	}
	return nil
}

func (s *Service) writeSitemap(ctx context.Context, writer artifactWriter, baseDir string, collection *site.Collection) error {
	hasAbout := false
	for _, special := range collection.Special() {
		if special.Kind == site.KindAbout {
			hasAbout = true
		}
	}
	content := buildSitemap(s.cfg, collection.Visible(), collection.Tags(), hasAbout)
	if err := writer.WriteFile(ctx, writeFileRequest{
		Path:        joinOutputPath(baseDir, sitemapFileName),
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    computeHashFromString(content),
	}); err != nil {
		return fmt.Errorf("generator: write sitemap: %w", err)
	}
	return nil
}

func (s *Service) writeRobots(ctx context.Context, writer artifactWriter, baseDir string) error {
	content := buildRobots(s.cfg)
	if err := writer.WriteFile(ctx, writeFileRequest{
		Path:        joinOutputPath(baseDir, "robots.txt"),
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryRobots,
		ContentType: "text/plain",
		Checksum:    computeHashFromString(content),
	}); err != nil {
		return fmt.Errorf("generator: write robots: %w", err)
	}
	return nil
}

func (s *Service) loadManifest(ctx context.Context, writer artifactWriter, baseDir string) (*buildManifest, error) {
	data, err := writer.ReadFile(ctx, joinOutputPath(baseDir, manifestFileName))
	if err != nil {
		return newBuildManifest(), err
	}
	return parseManifest(data)
}

func (s *Service) persistManifest(ctx context.Context, writer artifactWriter, manifest *buildManifest, baseDir string) error {
	data, err := manifest.marshal()
	if err != nil {
		return fmt.Errorf("generator: marshal manifest: %w", err)
	}
	if err := writer.WriteFile(ctx, writeFileRequest{
		Path:        joinOutputPath(baseDir, manifestFileName),
		Content:     strings.NewReader(string(data)),
		Size:        int64(len(data)),
		Category:    categoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
	}); err != nil {
		return fmt.Errorf("generator: write manifest: %w", err)
	}
	return nil
}

func (s *Service) recordManifest(
	manifest *buildManifest,
	collection *site.Collection,
	rendered []RenderedPage,
	seen map[string]string,
	themeFingerprint map[string]string,
	listingFP string,
	generatedAt time.Time,
) {
	manifest.GeneratedAt = generatedAt
	manifest.Theme = themeFingerprint
	manifest.Listing = listingFP
	manifest.prunePages(seen)

	bySource := map[string]*site.Post{}
	for _, post := range collection.All() {
		bySource[post.SourcePath] = post
	}

	for _, page := range rendered {
		post := bySource[page.Source]
		if post == nil {
			continue
		}
		manifest.setPage(manifestEntry(post, page.Output, page.Checksum, s.pageHash(post), generatedAt))
	}

	// Hidden posts keep a placeholder entry so a later unhide rebuilds and a
	// prior published copy gets removed.
	for source, link := range seen {
		if link != "hidden" {
			continue
		}
		post := bySource[source]
		if post == nil {
			continue
		}
		entry := manifestEntry(post, "", "", s.pageHash(post), generatedAt)
		entry.Link = "hidden"
		manifest.setPage(entry)
	}
}

func manifestEntry(post *site.Post, output, checksum, hash string, generatedAt time.Time) manifestPage {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}
	sort.Strings(tags)

	return manifestPage{
		Source:     post.SourcePath,
		Slug:       post.Slug,
		Link:       post.Link,
		Output:     output,
		Hash:       hash,
		Checksum:   checksum,
		Title:      post.Title,
		Date:       post.DateFormatted,
		Summary:    post.Summary,
		Tags:       tags,
		Hidden:     post.Hidden,
		RenderedAt: generatedAt,
	}
}

// listingEntries projects the collection into manifest rows purely for
// fingerprinting the listing-visible metadata.
func listingEntries(collection *site.Collection) []manifestPage {
	visible := collection.Visible()
	entries := make([]manifestPage, 0, len(visible))
	for _, post := range visible {
		entries = append(entries, manifestEntry(post, "", "", "", time.Time{}))
	}
	return entries
}

func (s *Service) removeStale(ctx context.Context, writer artifactWriter, manifest *buildManifest, seen map[string]string) (int, error) {
	removed := 0
	for _, output := range manifest.staleOutputs(seen) {
		if strings.HasSuffix(output, "/index.html") {
			if err := writer.RemoveAll(ctx, path.Dir(output)); err != nil {
				return removed, fmt.Errorf("generator: remove stale %s: %w", output, err)
			}
		} else {
			if err := writer.Remove(ctx, output); err != nil {
				return removed, fmt.Errorf("generator: remove stale %s: %w", output, err)
			}
		}
		s.logger.Debug("removed stale output", "path", output)
		removed++
	}
	return removed, nil
}

// baseDir normalises the output directory, keeping absolute paths intact.
func (s *Service) baseDir() string {
	dir := strings.TrimSpace(s.cfg.OutputDir)
	if dir == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(dir, "\\", "/"))
}

func (s *Service) stylesheetName() string {
	css := s.deps.Theme.Stylesheet()
	if len(css) == 0 {
		return "assets/style.css"
	}
	return path.Join("assets", fmt.Sprintf("style.%s.css", computeHash(css)[:8]))
}

func (s *Service) effectiveWorkerCount(postCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if postCount > 0 && workers > postCount {
		return postCount
	}
	return workers
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func aggregateFingerprint(fp map[string]string) string {
	keys := make([]string, 0, len(fp))
	for key := range fp {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(fp[key])
		b.WriteString("\n")
	}
	return computeHashFromString(b.String())
}
