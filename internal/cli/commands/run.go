package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talotukku/edimport/internal/fetch"
	"github.com/talotukku/edimport/internal/importer"
)

// RunLogName is the per-run operator log written into the data directory.
const RunLogName = "import.log"

// RunOptions holds options for the run command.
type RunOptions struct {
	Watch bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Download, stage and import interchange files",
		Long: `Run one full import pass.

Leftover downloads from a previous run are processed first; when the
download directory is empty, configured seller URLs are pulled. Staged
files are decoded and merged, then the uploads directory is scanned for
manually delivered files. The search index is rebuilt when any file
imported products.`,
		Example: `  # One import pass against the current directory
  edimport run

  # Import into a specific data directory and keep watching for uploads
  edimport run --dir /srv/edi --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "keep watching the uploads directory after the import pass")

	return cmd
}

func runRun(cmd *cobra.Command, opts *RunOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cc.Cfg.Import.Search {
		if err := cc.Store.EnsureSearchIndex(); err != nil {
			return err
		}
	}

	runLog, err := os.Create(filepath.Join(cc.Cfg.Dir, RunLogName))
	if err != nil {
		return fmt.Errorf("failed to create run log: %w", err)
	}
	defer runLog.Close()

	im, err := importer.New(cc.Cfg, cc.Store, runLog, cc.Logger)
	if err != nil {
		return err
	}

	fetcher := fetch.New(cc.Cfg, cc.Logger)

	archives, err := pendingDownloads(fetcher)
	if err != nil {
		return err
	}

	// An empty dir means nothing is left over from previous runs; pull
	// fresh content.
	if len(archives) == 0 {
		archives, err = fetcher.Download(ctx)
		if err != nil {
			return fmt.Errorf("failed to download archives: %w", err)
		}
	}

	sources, err := fetcher.StageArchives(archives)
	if err != nil {
		return fmt.Errorf("failed to stage downloaded files: %w", err)
	}
	if err := importSources(ctx, cc, im, sources); err != nil {
		return err
	}

	uploaded, err := fetcher.StageUploads()
	if err != nil {
		return fmt.Errorf("failed to process uploads: %w", err)
	}
	if err := importSources(ctx, cc, im, uploaded); err != nil {
		return err
	}

	if err := rebuildSearch(cc, im); err != nil {
		return err
	}

	if opts.Watch {
		return fetcher.Watch(ctx, func(sources []fetch.Source) error {
			if err := importSources(ctx, cc, im, sources); err != nil {
				return err
			}
			return rebuildSearch(cc, im)
		})
	}

	return nil
}

// pendingDownloads lists archives left in the download directory by an
// interrupted run.
func pendingDownloads(fetcher *fetch.Fetcher) ([]string, error) {
	dir := fetcher.DownloadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create downloads dir: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read downloads dir: %w", err)
	}

	var archives []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		archives = append(archives, filepath.Join(dir, e.Name()))
	}
	return archives, nil
}

func importSources(ctx context.Context, cc *CommandContext, im *importer.Importer, sources []fetch.Source) error {
	for _, src := range sources {
		kind, imported, err := im.ImportFile(ctx, src.Path, src.Name)
		if err != nil {
			return fmt.Errorf("failed to process interchange file %q: %w", src.Name, err)
		}
		if imported {
			cc.Logger.Info("imported", "name", src.Name, "type", kind)
		}
	}
	return nil
}

// rebuildSearch refreshes the full-text index once per batch; without new
// products there is nothing to refresh.
func rebuildSearch(cc *CommandContext, im *importer.Importer) error {
	if !cc.Cfg.Import.Search || !im.ProductsImported() {
		return nil
	}

	cc.Logger.Debug("building search indexes")

	active := make(map[string]string, len(cc.Cfg.Sellers))
	for _, s := range cc.Cfg.Sellers {
		active[s.ID] = s.Name
	}

	if err := cc.Store.RebuildSearchIndex(active); err != nil {
		return fmt.Errorf("failed to update search index: %w", err)
	}
	return nil
}
