package generator

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// writeStylesheet writes the theme CSS under a content-hashed name so cached
// browsers pick up changes. Returns the output-relative filename templates
// should reference.
func (s *Service) writeStylesheet(ctx context.Context, writer artifactWriter, baseDir string) (string, error) {
	css := s.deps.Theme.Stylesheet()
	if len(css) == 0 {
		return "", nil
	}

	hashed := fmt.Sprintf("style.%s.css", computeHash(css)[:8])
	rel := path.Join("assets", hashed)
	target := joinOutputPath(baseDir, rel)

	if err := writer.EnsureDir(ctx, path.Dir(target)); err != nil {
		return "", err
	}
	if err := writer.WriteFile(ctx, writeFileRequest{
		Path:        target,
		Content:     bytes.NewReader(css),
		Size:        int64(len(css)),
		Category:    categoryAsset,
		ContentType: "text/css",
		Checksum:    computeHash(css),
	}); err != nil {
		return "", err
	}
	return rel, nil
}

// copyStatic mirrors the configured static directory into the output tree.
func (s *Service) copyStatic(ctx context.Context, writer artifactWriter, baseDir string) (int, error) {
	dir := strings.TrimSpace(s.cfg.StaticDir)
	if dir == "" {
		return 0, nil
	}
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("generator: stat static dir: %w", err)
	}

	source := os.DirFS(dir)
	copied := 0
	err := fs.WalkDir(source, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(source, p)
		if err != nil {
			return fmt.Errorf("generator: read static %s: %w", p, err)
		}
		target := joinOutputPath(baseDir, path.Join("static", p))
		if err := writer.EnsureDir(ctx, path.Dir(target)); err != nil {
			return err
		}
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:        target,
			Content:     bytes.NewReader(data),
			Size:        int64(len(data)),
			Category:    categoryAsset,
			ContentType: detectAssetContentType(p),
			Checksum:    computeHash(data),
		}); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, err
	}
	return copied, nil
}

// copyCNAME places the custom-domain file in the output root when configured.
func (s *Service) copyCNAME(ctx context.Context, writer artifactWriter, baseDir string) error {
	file := strings.TrimSpace(s.cfg.CNAMEFile)
	if file == "" {
		return nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("CNAME file not found, custom domain may fail", "path", file)
			return nil
		}
		return fmt.Errorf("generator: read CNAME: %w", err)
	}

	target := joinOutputPath(baseDir, "CNAME")
	return writer.WriteFile(ctx, writeFileRequest{
		Path:        target,
		Content:     bytes.NewReader(data),
		Size:        int64(len(data)),
		Category:    categoryAsset,
		ContentType: "text/plain",
		Checksum:    computeHash(data),
	})
}

func detectAssetContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	case ".woff2":
		return "font/woff2"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
