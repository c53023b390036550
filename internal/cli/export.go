package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/entrypoint"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		book    int
		formats []string
	)
	cmd := &cobra.Command{
		Use:   "export [chapter]",
		Short: "Export a chapter, or a whole book with --book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (book == 0) {
				return errors.New("give either a chapter number or --book")
			}
			parsed, err := archive.ParseFormats(formats)
			if err != nil {
				return err
			}

			if book != 0 {
				return opts.withApp(cmd, func(app *entrypoint.App) error {
					result, err := app.Exporter.ExportBook(book, parsed)
					if err != nil {
						return err
					}
					app.Console.Println(fmt.Sprintf("book %d: %d chapters exported, %d files written, %d chapters failed",
						book, result.ChaptersProcessed, result.FilesWritten, result.ChaptersFailed))
					return nil
				})
			}

			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(app *entrypoint.App) error {
				chapter, err := app.Archive.Chapter(number)
				if err != nil {
					return err
				}
				written, err := app.Exporter.ExportChapter(chapter, parsed)
				paths := make([]string, 0, len(written))
				for _, p := range written {
					paths = append(paths, p)
				}
				sort.Strings(paths)
				for _, p := range paths {
					app.Console.Println(p)
				}
				return err
			})
		},
	}
	cmd.Flags().IntVar(&book, "book", 0, "export every chapter of this book")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "formats to export (default all)")
	return cmd
}
