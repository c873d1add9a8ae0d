package theme

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

//go:embed assets/style.css
var defaultStylesheet []byte

// Config selects and parameterizes the active theme.
type Config struct {
	// Path points at a theme directory. Empty selects the embedded default.
	Path string
	// Name is the theme name used for manifest selection.
	Name string
	// Variant picks a manifest variant (e.g. "dark").
	Variant string
	// CSSVariablePrefix namespaces variant tokens when emitted as CSS variables.
	CSSVariablePrefix string
}

// Theme bundles the parsed template set, the stylesheet, and the optional
// manifest selection backing both.
type Theme struct {
	cfg         Config
	templates   *template.Template
	stylesheet  []byte
	selection   *gotheme.Selection
	fingerprint map[string]string
}

const stylesheetAssetKey = "styles"

// Load resolves the theme described by cfg. A missing manifest inside an
// existing theme directory is not an error; the directory then only supplies
// template and stylesheet overrides.
func Load(cfg Config) (*Theme, error) {
	t := &Theme{
		cfg:         cfg,
		fingerprint: map[string]string{},
	}

	var themeFS fs.FS
	if strings.TrimSpace(cfg.Path) != "" {
		if _, err := os.Stat(cfg.Path); err != nil {
			return nil, fmt.Errorf("theme: stat %s: %w", cfg.Path, err)
		}
		themeFS = os.DirFS(cfg.Path)

		if err := t.loadSelection(themeFS); err != nil {
			return nil, err
		}
	}

	if err := t.loadTemplates(themeFS); err != nil {
		return nil, err
	}
	if err := t.loadStylesheet(themeFS); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Theme) loadSelection(themeFS fs.FS) error {
	manifest, err := gotheme.LoadDir(themeFS, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("theme: load manifest: %w", err)
	}

	if strings.TrimSpace(manifest.Name) == "" {
		manifest.Name = strings.TrimSpace(t.cfg.Name)
	}
	if manifest.Name == "" {
		manifest.Name = "default"
	}

	registry := gotheme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return fmt.Errorf("theme: register manifest: %w", err)
	}

	selector := gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   manifest.Name,
		DefaultVariant: t.cfg.Variant,
	}
	selection, err := selector.Select(manifest.Name, t.cfg.Variant)
	if err != nil {
		return fmt.Errorf("theme: select %s: %w", manifest.Name, err)
	}
	t.selection = selection
	return nil
}

func (t *Theme) loadTemplates(themeFS fs.FS) error {
	source := fs.FS(defaultTemplates)
	if themeFS != nil {
		if entries, err := fs.Glob(themeFS, "templates/*.html"); err == nil && len(entries) > 0 {
			source = themeFS
		}
	}

	templates, err := template.ParseFS(source, "templates/*.html")
	if err != nil {
		return fmt.Errorf("theme: parse templates: %w", err)
	}
	t.templates = templates

	entries, err := fs.Glob(source, "templates/*.html")
	if err != nil {
		return fmt.Errorf("theme: enumerate templates: %w", err)
	}
	sort.Strings(entries)
	for _, entry := range entries {
		data, err := fs.ReadFile(source, entry)
		if err != nil {
			return fmt.Errorf("theme: read template %s: %w", entry, err)
		}
		t.fingerprint[entry] = hashBytes(data)
	}
	return nil
}

func (t *Theme) loadStylesheet(themeFS fs.FS) error {
	css := defaultStylesheet

	if themeFS != nil {
		name := "style.css"
		if t.selection != nil && t.selection.Manifest != nil {
			if mapped, ok := t.selection.Manifest.Assets.Files[stylesheetAssetKey]; ok && mapped != "" {
				name = path.Clean(mapped)
			}
		}
		if data, err := fs.ReadFile(themeFS, name); err == nil {
			css = data
		}
	}

	if vars := t.CSSVariables(); len(vars) > 0 {
		css = append(append([]byte(nil), css...), []byte(renderCSSVariables(vars))...)
	}

	t.stylesheet = css
	t.fingerprint["style.css"] = hashBytes(css)
	return nil
}

// Renderer returns the template renderer for this theme.
func (t *Theme) Renderer() *Renderer {
	return &Renderer{templates: t.templates}
}

// Stylesheet returns the resolved CSS, variant variables included.
func (t *Theme) Stylesheet() []byte {
	return t.stylesheet
}

// CSSVariables exposes the selected variant tokens as CSS custom properties.
func (t *Theme) CSSVariables() map[string]string {
	if t.selection == nil {
		return nil
	}
	return t.selection.CSSVariables(t.cfg.CSSVariablePrefix)
}

// Fingerprint maps each theme input to its content hash. A change in any
// entry invalidates every generated page.
func (t *Theme) Fingerprint() map[string]string {
	out := make(map[string]string, len(t.fingerprint))
	for key, value := range t.fingerprint {
		out[key] = value
	}
	return out
}

// Name reports the selected theme name, or "default" for the embedded theme.
func (t *Theme) Name() string {
	if t.selection != nil {
		return t.selection.Theme
	}
	return "default"
}

func renderCSSVariables(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("\n:root {\n")
	for _, key := range keys {
		fmt.Fprintf(&b, "  %s: %s;\n", key, vars[key])
	}
	b.WriteString("}\n")
	return b.String()
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
