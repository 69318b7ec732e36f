package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/apibook/internal/config"
	"github.com/mvp-joe/apibook/internal/generator"
)

var (
	quietFlag           bool
	summaryTemplateFlag string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <root-dir> <output-dir>",
	Short: "Generate API reference documents for a source tree",
	Long: `Generate scans the source tree rooted at <root-dir> and writes one
Markdown document per module into <output-dir>, mirroring the package
layout, plus a SUMMARY.md navigation file.

Files the parser rejects are skipped with a warning and the rest of the
tree is still documented. With --verbose, any warning makes the exit
status non-zero.

Examples:
  # Document ./mypkg into ./docs/api
  apibook generate ./mypkg ./docs/api

  # Use a custom navigation template containing a {{toc}} marker
  apibook generate ./mypkg ./docs/api --summary-template book.md.tmpl
`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().StringVar(&summaryTemplateFlag, "summary-template", "", "Path to a summary template containing {{toc}}")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling generation...")
		cancel()
	}()

	rootDir, outputDir := args[0], args[1]

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	gen, err := generator.New(generator.Options{
		RootDir:             rootDir,
		OutputDir:           outputDir,
		Config:              cfg,
		SummaryTemplatePath: summaryTemplateFlag,
		Progress:            NewCLIProgressReporter(quietFlag),
	})
	if err != nil {
		return err
	}

	stats, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	if verbose && len(stats.Warnings) > 0 {
		return fmt.Errorf("%d warning(s) during generation", len(stats.Warnings))
	}
	return nil
}

// loadConfig loads the config from --config when given, otherwise from
// the root directory's .apibook/ config with env overrides.
func loadConfig(rootDir string) (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadConfigFromFile(cfgFile)
	}
	return config.LoadConfigFromDir(rootDir)
}
