package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/example/studynotes/internal/revision"
	"github.com/example/studynotes/internal/store"
	"github.com/example/studynotes/pkg/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	viewAll     = "all"
	viewPending = "pending"
	viewDone    = "done"
)

func (a *App) subjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List the subjects notes can be filed under",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, s := range models.Subjects {
				fmt.Fprintf(out, "%-12s %s\n", s.Code, s.Name)
			}
			return nil
		},
	}
}

func (a *App) addCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a completed note and schedule its revisions",
		Long: `Record a completed note and schedule its revisions.

Examples:
  # Note completed today
  studynotes add --subject EMPM01 --code W1-L2

  # Note completed on a given day
  studynotes add --subject "Workplace Information Management" --code W1-L2 --date 2025-01-10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			code, _ := cmd.Flags().GetString("code")
			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = a.store.Today().String()
			}

			n, err := a.store.Add(subject, code, date)
			if err != nil && n.ID == 0 {
				return err
			}

			out := cmd.OutOrStdout()
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Fprintf(out, "%s Added note %d: %s (%s)\n", green("✓"), n.ID, n.NoteCode, n.SubjectName)
			n.Revisions.Each(func(l models.Label, cp models.Checkpoint) {
				fmt.Fprintf(out, "  %-7s %s\n", l, cp.Date)
			})
			return err
		},
	}
	cmd.Flags().String("subject", "", "Subject code or name (see 'studynotes subjects')")
	cmd.Flags().String("code", "", "Note code")
	cmd.Flags().String("date", "", "Completion date YYYY-MM-DD (default today)")
	return cmd
}

func (a *App) listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show notes with the status of every checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _ := cmd.Flags().GetString("view")

			var notes []models.Note
			switch strings.ToLower(view) {
			case viewAll:
				notes = a.store.Notes()
			case viewPending:
				notes = a.store.Pending()
			case viewDone:
				notes = a.store.Done()
			default:
				return fmt.Errorf("unknown view %q, expected all, pending or done", view)
			}

			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes")
			} else {
				printTable(out, notes, a.store.Today())
			}
			fmt.Fprintln(out)
			printStats(out, a.store.Stats())
			return nil
		},
	}
	cmd.Flags().String("view", viewAll, "Which notes to show: all, pending or done")
	return cmd
}

func (a *App) toggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID LABEL",
		Short: "Mark a checkpoint revised, or not revised again",
		Long: `Mark a checkpoint revised, or not revised again.

LABEL is one of 24H, 3Days, 1Week or 1Month.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			label, err := models.ParseLabel(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, ok := a.store.Get(id); !ok {
				warnMissing(out, id)
				return nil
			}
			err = a.store.Toggle(id, label)
			n, _ := a.store.Get(id)
			state := "not revised"
			if n.Revisions.At(label).Completed {
				state = "revised"
			}
			fmt.Fprintf(out, "Note %d: %s marked %s\n", id, label, state)
			if store.AllDone(n) {
				green := color.New(color.FgGreen).SprintFunc()
				fmt.Fprintf(out, "%s All revisions of %s done\n", green("✓"), n.NoteCode)
			}
			return err
		},
	}
}

func (a *App) deleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			n, ok := a.store.Get(id)
			if !ok {
				warnMissing(out, id)
				return nil
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				fmt.Fprintf(out, "Delete %s (%s)? Are you sure you want to delete this note? [y/N]: ", n.NoteCode, n.SubjectName)
				if !confirm(a.in) {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if err := a.store.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted note %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *App) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show note and revision counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printStats(cmd.OutOrStdout(), a.store.Stats())
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

func warnMissing(w io.Writer, id int64) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(w, "%s No note with id %d\n", yellow("⚠"), id)
}

func confirm(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func printStats(w io.Writer, s models.Stats) {
	fmt.Fprintf(w, "Total notes: %d\n", s.Total)
	fmt.Fprintf(w, "Pending revisions: %d\n", s.Pending)
	fmt.Fprintf(w, "Completed revisions: %d\n", s.Completed)
}

const subjectWidth = 34

func printTable(w io.Writer, notes []models.Note, today models.Date) {
	bold := color.New(color.Bold).SprintFunc()
	head := []string{pad("ID", 14), pad("SUBJECT", subjectWidth), pad("CODE", 12), pad("COMPLETED", 11)}
	for _, l := range models.Labels {
		head = append(head, pad(strings.ToUpper(string(l)), 12))
	}
	fmt.Fprintln(w, bold(strings.TrimRight(strings.Join(head, " "), " ")))

	for _, n := range notes {
		cells := []string{
			pad(strconv.FormatInt(n.ID, 10), 14),
			pad(truncate(n.SubjectName, subjectWidth), subjectWidth),
			pad(n.NoteCode, 12),
			pad(n.CompletionDate.String(), 11),
		}
		n.Revisions.Each(func(_ models.Label, cp models.Checkpoint) {
			cells = append(cells, statusCell(cp, today))
		})
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	}
}

// statusCell is the checkpoint date, marked and coloured by status.
func statusCell(cp models.Checkpoint, today models.Date) string {
	text := cp.Date.String()
	st := revision.Classify(cp, today)
	switch st {
	case revision.Completed:
		return color.New(color.FgGreen).Sprint(pad(text+" ✓", 12))
	case revision.Overdue:
		return color.New(color.FgRed).Sprint(pad(text+" !", 12))
	case revision.DueToday:
		return color.New(color.FgYellow, color.Bold).Sprint(pad(text+" •", 12))
	}
	return pad(text, 12)
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}
