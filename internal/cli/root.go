// Package cli implements the archivist command line.
package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mrlokans/archivist/internal/config"
	"github.com/mrlokans/archivist/internal/entrypoint"
)

type rootOptions struct {
	cfg      *config.Config
	fs       afero.Fs
	version  string
	database string
	root     string
}

// NewRootCommand builds the archivist command tree. fsys is the filesystem
// the archive tree lives on.
func NewRootCommand(cfg *config.Config, version string, fsys afero.Fs) *cobra.Command {
	opts := &rootOptions{cfg: cfg, fs: fsys, version: version}

	root := &cobra.Command{
		Use:           "archivist",
		Short:         "archivist manages a chapter archive and its exports",
		Long:          "archivist stores chapters in a document database and exports them as text, markdown, HTML, JSON and CSV files under books/bookNN/<format>/.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.database, "db", "", "named database connection (supergene|local)")
	root.PersistentFlags().StringVar(&opts.root, "root", "", "archive root directory (defaults to ARCHIVE_ROOT)")

	root.AddCommand(
		newPrintCommand(opts),
		newShowCommand(opts),
		newPathCommand(opts),
		newPathsCommand(opts),
		newExportCommand(opts),
		newInitDirsCommand(opts),
		newImportCommand(opts),
		newTagCommand(opts),
		newServeCommand(opts),
		newVersionCommand(opts),
	)
	return root
}

// withApp opens the archive for the duration of fn. Errors returned by fn are
// logged before they are handed back to cobra.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(app *entrypoint.App) error) error {
	app, err := entrypoint.Open(o.cfg, entrypoint.Options{
		Database: o.database,
		Root:     o.root,
		Console:  cmd.OutOrStdout(),
		Fs:       o.fs,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	if err := fn(app); err != nil {
		app.Log.Error("command failed", "command", cmd.Name(), "error", err)
		return err
	}
	return nil
}
