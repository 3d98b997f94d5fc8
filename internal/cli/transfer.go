package cli

import (
	"errors"
	"fmt"

	"github.com/example/studynotes/internal/excel"
	"github.com/example/studynotes/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *App) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all notes to a PDF, JSON, CSV or XLSX file",
		Long: `Write all notes to a PDF, JSON, CSV or XLSX file.

The file is named study-notes-<unix time>.<format> and written to --dir,
the configured export directory, or the desktop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := export.ParseFormat(name)
			if err != nil {
				return err
			}

			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = a.cfg.ExportDir
			}
			if dir == "" {
				if dir, err = export.DefaultDir(); err != nil {
					return fmt.Errorf("failed to locate desktop: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			path, err := export.ToFile(format, dir, a.store.Notes(), a.now())
			if errors.Is(err, export.ErrNothingToExport) {
				yellow := color.New(color.FgYellow).SprintFunc()
				fmt.Fprintf(out, "%s No notes to export\n", yellow("⚠"))
				return nil
			}
			if err != nil {
				return err
			}
			a.log.Printf("[INFO] Exported %s to %s\n", format, path)

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Fprintf(out, "%s Exported to %s\n", green("✓"), path)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", string(export.PDF), "Output format: pdf, json, csv or xlsx")
	cmd.Flags().String("dir", "", "Output directory")
	return cmd
}

func (a *App) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add notes from a CSV or XLSX file",
		Long: `Add notes from a CSV or XLSX file.

Columns A, B and C hold the subject, the note code and the completion
date. The first row is a header. CSV and XLSX exports can be imported
back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := excel.DefaultImportConfig()
			config.FilePath = args[0]
			config.SheetName, _ = cmd.Flags().GetString("sheet")

			result, err := excel.Import(a.store, config)
			if result == nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed %d rows: %d created, %d skipped\n",
				result.TotalProcessed, result.Created, result.Skipped)
			yellow := color.New(color.FgYellow).SprintFunc()
			for _, e := range result.Errors {
				fmt.Fprintf(out, "  %s %s\n", yellow("⚠"), e)
			}
			return err
		},
	}
	cmd.Flags().String("sheet", "", "Sheet to read from an XLSX file (default first sheet)")
	return cmd
}
