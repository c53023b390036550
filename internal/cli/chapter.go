package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/entrypoint"
	"github.com/mrlokans/archivist/internal/render"
)

func parseChapterArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: invalid chapter %q", archive.ErrMissingChapterNumber, arg)
	}
	return n, nil
}

func newPrintCommand(opts *rootOptions) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "print <chapter>",
		Short: "Print a chapter to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			m, err := render.ParseMode(mode)
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(app *entrypoint.App) error {
				chapter, err := app.Archive.Chapter(number)
				if err != nil {
					return err
				}
				return app.Console.PrintChapter(chapter, m)
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(render.ModeText), "output mode (text|md)")
	return cmd
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <chapter>",
		Short: "Show the stored details of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(app *entrypoint.App) error {
				chapter, err := app.Archive.Chapter(number)
				if err != nil {
					return err
				}
				return app.Console.PrintDetails(chapter)
			})
		},
	}
}

func newPathCommand(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "path <chapter>",
		Short: "Print the export path of a chapter, creating its directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(app *entrypoint.App) error {
				path, err := app.Archive.Path(number, format)
				if err != nil {
					return err
				}
				app.Console.Println(path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(archive.FormatMarkdown), "export format (csv|html|json|md|text)")
	return cmd
}

func newPathsCommand(opts *rootOptions) *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Generate and store the export paths of a range of chapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from > to {
				return fmt.Errorf("invalid range %d..%d", from, to)
			}
			return opts.withApp(cmd, func(app *entrypoint.App) error {
				if err := app.Console.Rule(fmt.Sprintf("Run %d: paths %d..%d", app.Run, from, to)); err != nil {
					return err
				}
				result, err := app.Archive.GeneratePaths(from, to)
				if err != nil {
					return err
				}
				app.Console.Println(fmt.Sprintf("processed %d chapters, %d missing, %d failed",
					result.Processed, len(result.Missing), len(result.Failed)))
				if len(result.Failed) > 0 {
					return fmt.Errorf("%d chapters failed", len(result.Failed))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", archive.FirstChapter, "first chapter")
	cmd.Flags().IntVar(&to, "to", archive.LastChapter, "last chapter")
	return cmd
}

func newInitDirsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-dirs",
		Short: "Create the books directory tree under the archive root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(app *entrypoint.App) error {
				created, err := app.Archive.ProvisionTree()
				if err != nil {
					return err
				}
				app.Console.Println(fmt.Sprintf("created %d directories under %s", len(created), app.Archive.Root()))
				return nil
			})
		},
	}
}

func newTagCommand(opts *rootOptions) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "tag <chapter> <tag>...",
		Short: "Add tags to a chapter, or remove them with --remove",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(app *entrypoint.App) error {
				update := app.Chapters.AddTags
				if remove {
					update = app.Chapters.RemoveTags
				}
				chapter, err := update(number, args[1:]...)
				if err != nil {
					return err
				}
				app.Console.Println(fmt.Sprintf("chapter %d tags: %v", chapter.Number, chapter.TagNames()))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "remove the given tags instead of adding them")
	return cmd
}
