// Package generator orchestrates the documentation pipeline: discover
// source files, build module records, resolve re-exports across the full
// batch, then render and write one document per module plus a navigation
// summary. Stages run strictly in order because resolution needs the
// complete module mapping before any document is rendered.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mvp-joe/apibook/internal/config"
	"github.com/mvp-joe/apibook/internal/docmodel"
	"github.com/mvp-joe/apibook/internal/extract"
	"github.com/mvp-joe/apibook/internal/render"
	"github.com/mvp-joe/apibook/internal/resolve"
)

// Options configures a Generator.
type Options struct {
	// RootDir is the directory tree to document. Its base name becomes the
	// root of every dotted module name.
	RootDir string
	// OutputDir receives the rendered documents and the summary file.
	OutputDir string
	Config    *config.Config
	// SummaryTemplatePath overrides Config's template path when non-empty.
	SummaryTemplatePath string
	Progress            ProgressReporter
}

// Generator runs the full source-to-Markdown pipeline.
type Generator struct {
	opts      Options
	discovery *FileDiscovery
	template  string
}

// New validates the options and prepares a Generator. Errors here are
// configuration errors: nothing has been processed yet and the caller
// should treat them as fatal.
func New(opts Options) (*Generator, error) {
	if opts.RootDir == "" {
		return nil, errors.New("root directory is required")
	}
	info, err := os.Stat(opts.RootDir)
	if err != nil {
		return nil, fmt.Errorf("root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root directory: %s is not a directory", opts.RootDir)
	}
	if opts.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Progress == nil {
		opts.Progress = NoopProgressReporter{}
	}

	discovery, err := NewFileDiscovery(opts.RootDir,
		opts.Config.Discovery.Include, opts.Config.Discovery.Ignore)
	if err != nil {
		return nil, fmt.Errorf("discovery patterns: %w", err)
	}

	template, err := loadSummaryTemplate(opts)
	if err != nil {
		return nil, err
	}

	return &Generator{
		opts:      opts,
		discovery: discovery,
		template:  template,
	}, nil
}

// loadSummaryTemplate reads the summary template file, if one is
// configured. A missing or unreadable template is a configuration error.
func loadSummaryTemplate(opts Options) (string, error) {
	path := opts.SummaryTemplatePath
	if path == "" {
		path = opts.Config.Output.SummaryTemplate
	}
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("summary template: %w", err)
	}
	return string(data), nil
}

// Run executes the pipeline once. Per-file parse failures are skipped
// with a warning; only I/O failures writing output abort the run.
func (g *Generator) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	runID := uuid.NewString()
	log.Debug("starting generation run", "run_id", runID, "root", g.opts.RootDir)

	stats := &Stats{}

	g.opts.Progress.OnDiscoveryStart()
	files, err := g.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	sort.Strings(files)
	stats.FilesDiscovered = len(files)
	g.opts.Progress.OnDiscoveryComplete(len(files))

	modules, err := g.buildModules(ctx, files, stats)
	if err != nil {
		return nil, err
	}

	views := resolve.Exports(modules)
	for _, name := range sortedKeys(views) {
		for _, warning := range views[name].Warnings {
			log.Warn("export resolution failed",
				"module", warning.Module, "name", warning.Name,
				"kind", string(warning.Kind), "detail", warning.Detail)
			stats.Warnings = append(stats.Warnings, warning.String())
			stats.UnresolvedNames++
		}
	}

	if err := g.writeDocs(ctx, views, stats); err != nil {
		return nil, err
	}

	stats.ProcessingTime = time.Since(start)
	g.opts.Progress.OnComplete(stats)
	log.Debug("generation run finished", "run_id", runID,
		"docs", stats.DocsWritten, "warnings", len(stats.Warnings),
		"elapsed", stats.ProcessingTime)
	return stats, nil
}

// buildModules parses every discovered file into a module record keyed by
// dotted name. A file the parser rejects is skipped, warned about, and
// counted; the rest of the batch proceeds without it.
func (g *Generator) buildModules(ctx context.Context, files []string, stats *Stats) (map[string]*docmodel.Module, error) {
	modules := make(map[string]*docmodel.Module, len(files))

	g.opts.Progress.OnFileProcessingStart(len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		moduleName := g.discovery.ModuleName(file)
		module, err := extract.BuildModuleFromFile(file, moduleName)
		if err != nil {
			if errors.Is(err, extract.ErrParse) {
				log.Warn("skipping unparseable file", "file", file, "error", err)
				stats.ParseFailures++
				stats.Warnings = append(stats.Warnings, fmt.Sprintf("%s: %v", file, err))
				g.opts.Progress.OnFileProcessed(file)
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		modules[moduleName] = module
		stats.ModulesBuilt++
		g.opts.Progress.OnFileProcessed(file)
	}

	return modules, nil
}

// writeDocs renders every view and the navigation summary into OutputDir.
func (g *Generator) writeDocs(ctx context.Context, views map[string]*resolve.View, stats *Stats) error {
	g.opts.Progress.OnWritingDocs()

	names := sortedKeys(views)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		relPath := render.DocPath(name)
		content := render.Module(views[name])
		if err := writeDoc(g.opts.OutputDir, relPath, content); err != nil {
			return fmt.Errorf("writing %s: %w", relPath, err)
		}
		stats.DocsWritten++
	}

	summary := render.Summary(names, g.template)
	summaryFile := g.opts.Config.Output.SummaryFile
	if err := writeDoc(g.opts.OutputDir, summaryFile, summary); err != nil {
		return fmt.Errorf("writing %s: %w", summaryFile, err)
	}
	stats.DocsWritten++

	return nil
}

func sortedKeys(views map[string]*resolve.View) []string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeDoc writes one document under outputDir, creating parent
// directories as needed.
func writeDoc(outputDir, relPath, content string) error {
	path := filepath.Join(outputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
