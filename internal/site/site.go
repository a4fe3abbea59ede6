// Package site builds the static HTML documentation site from the Markdown
// documents in the docs directory.
package site

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/refdocs/internal/model"
	"go.uber.org/zap"
)

const (
	defaultTitle = "Documentation"
	indexSource  = "INDEX.md"
	indexPage    = "index.html"
	cssDir       = "assets/css"
)

// Builder renders every Markdown document into an HTML page
type Builder struct {
	config *model.Config
	logger *zap.Logger
}

// NewBuilder creates a site builder
func NewBuilder(cfg *model.Config, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{config: cfg, logger: logger}
}

// BuildResult describes a completed build
type BuildResult struct {
	Dir      string
	Pages    []string // built HTML file names
	Dangling []string // navigation hrefs with no built page
}

// BuildDir is the absolute-or-relative output directory of the site
func (b *Builder) BuildDir() string {
	return b.config.DocsPath(b.config.Site.BuildDir)
}

// Build writes one page per Markdown document, copies the stylesheet,
// VERSION and the Markdown sources next to the pages, writes robots.txt and
// checks the navigation for links to pages that were not built.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	srcDir := b.config.DocsPath(".")
	dst := b.BuildDir()
	if err := os.MkdirAll(filepath.Join(dst, filepath.FromSlash(cssDir)), 0755); err != nil {
		return nil, fmt.Errorf("create build dir: %w", err)
	}

	if err := b.copyStylesheet(dst); err != nil {
		return nil, err
	}

	version := ""
	versionFile := b.config.DocsPath(b.config.Version.File)
	if data, err := os.ReadFile(versionFile); err == nil {
		version = strings.TrimSpace(string(data))
		if err := copyIfDifferent(versionFile, filepath.Join(dst, "VERSION")); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read version: %w", err)
	}

	sources, err := b.sources(srcDir)
	if err != nil {
		return nil, err
	}

	res := &BuildResult{Dir: dst}
	for _, name := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := filepath.Join(srcDir, name)
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if err := copyIfDifferent(src, filepath.Join(dst, name)); err != nil {
			return nil, err
		}

		page := strings.TrimSuffix(name, filepath.Ext(name)) + ".html"
		if err := b.writePage(dst, page, name, Title(string(data)), version); err != nil {
			return nil, err
		}
		res.Pages = append(res.Pages, page)

		if name == indexSource {
			if err := b.writePage(dst, indexPage, name, b.config.Site.Title, version); err != nil {
				return nil, err
			}
			res.Pages = append(res.Pages, indexPage)
		}
	}

	if err := WriteRobots(filepath.Join(dst, robotsFile), b.config.Site.Disallow); err != nil {
		return nil, err
	}

	dangling, err := CheckNav(dst, res.Pages)
	if err != nil {
		return nil, err
	}
	for _, href := range dangling {
		b.logger.Warn("navigation entry has no page", zap.String("href", href))
	}
	res.Dangling = dangling
	return res, nil
}

// sources lists the Markdown documents that get a page, sorted by name
func (b *Builder) sources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read docs dir: %w", err)
	}
	skip := make(map[string]bool, len(b.config.Site.Skip))
	for _, name := range b.config.Site.Skip {
		skip[name] = true
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || filepath.Ext(name) != ".md" {
			continue
		}
		if strings.HasPrefix(name, "_") || skip[name] {
			b.logger.Debug("skipping document", zap.String("file", name))
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (b *Builder) writePage(dir, page, source, title, version string) error {
	data := pageData{
		Title:        title,
		SiteTitle:    b.config.Site.Title,
		Stylesheet:   b.stylesheetHref(),
		Version:      version,
		MarkdownFile: source,
		HTMLFile:     page,
	}
	for _, item := range b.config.Site.Nav {
		data.Nav = append(data.Nav, navEntry{Href: item.Href, Title: item.Title, Active: item.Href == page})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	if err := os.WriteFile(filepath.Join(dir, page), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", page, err)
	}
	b.logger.Debug("page built", zap.String("page", page), zap.String("title", title))
	return nil
}

func (b *Builder) stylesheetHref() string {
	return cssDir + "/" + filepath.Base(b.config.Site.Stylesheet)
}

func (b *Builder) copyStylesheet(dst string) error {
	src := b.config.DocsPath(b.config.Site.Stylesheet)
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		b.logger.Debug("no stylesheet", zap.String("path", src))
		return nil
	}
	return copyIfDifferent(src, filepath.Join(dst, filepath.FromSlash(b.stylesheetHref())))
}

// Title returns the text of the first level-one heading, or "Documentation"
func Title(markdown string) string {
	scanner := bufio.NewScanner(strings.NewReader(markdown))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "#") {
			continue
		}
		rest := strings.TrimPrefix(line, "#")
		if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		if title := strings.TrimSpace(rest); title != "" {
			return title
		}
	}
	return defaultTitle
}

// copyIfDifferent copies src to dst unless both name the same file
func copyIfDifferent(src, dst string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	if absSrc == absDst {
		return nil
	}

	in, err := os.Open(absSrc)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(absDst), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	out, err := os.Create(absDst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
