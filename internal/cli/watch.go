package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/apibook/internal/generator"
	"github.com/mvp-joe/apibook/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <root-dir> <output-dir>",
	Short: "Regenerate documents whenever the source tree changes",
	Long: `Watch runs one full generation, then monitors <root-dir> for changes
to Python files and regenerates the complete document set after each
burst of changes. Re-export resolution spans modules, so a single
changed file can affect documents elsewhere in the tree; regeneration
is always whole-tree.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	watchCmd.Flags().StringVar(&summaryTemplateFlag, "summary-template", "", "Path to a summary template containing {{toc}}")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

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

	if _, err := gen.Run(ctx); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(rootDir, []string{".py"})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	err = fw.Start(ctx, func(files []string) {
		log.Info("source changed, regenerating", "files", len(files))
		if _, err := gen.Run(ctx); err != nil {
			log.Error("regeneration failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	if !quietFlag {
		fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", rootDir)
	}

	<-sigChan
	fmt.Println("\nStopping watcher...")
	cancel()
	return nil
}
