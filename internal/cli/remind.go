package cli

import (
	"fmt"
	"time"

	"github.com/example/studynotes/internal/notify"
	"github.com/example/studynotes/internal/scheduler"
	"github.com/spf13/cobra"
)

const desktopTimeout = 10 * time.Second

func (a *App) remindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remind",
		Aliases: []string{"watch"},
		Short:   "Send notifications for revisions due today or tomorrow",
		Long: `Send notifications for revisions due today or tomorrow.

Reminders go to the desktop and, when TELEGRAM_BOT_TOKEN and
TELEGRAM_CHAT_ID are set, to a Telegram chat. Without --once the
command keeps checking every poll interval until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			once, _ := cmd.Flags().GetBool("once")

			cfg := a.cfg.Poller()
			poller := scheduler.New(a.store, a.notifiers(), cfg,
				scheduler.WithClock(a.now), scheduler.WithLogger(a.log))

			out := cmd.OutOrStdout()
			if once {
				sent := poller.Check(a.now())
				fmt.Fprintf(out, "Sent %d reminders\n", sent)
				return nil
			}

			if !cfg.Enabled {
				a.log.Println("[WARN] Notifications are disabled, reminders will not be sent")
			}
			if err := poller.Start(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Watching for due revisions every %s. Press Ctrl+C to stop.\n", cfg.Interval)

			<-cmd.Context().Done()
			poller.Stop()
			fmt.Fprintln(out, "Stopped")
			return nil
		},
	}
	cmd.Flags().Bool("once", false, "Check once and exit")
	return cmd
}

// notifiers returns the configured channels, or nil when none is
// available.
func (a *App) notifiers() notify.Notifier {
	if a.notifier != nil {
		return a.notifier
	}

	var channels notify.Multi
	if d, err := notify.NewDesktop(AppName, desktopTimeout); err != nil {
		a.log.Printf("[WARN] Desktop notifications unavailable: %v\n", err)
	} else {
		channels = append(channels, d)
		a.closers = append(a.closers, d)
	}

	if a.cfg.TelegramEnabled() {
		if t, err := notify.NewTelegram(a.cfg.TelegramToken, a.cfg.TelegramChatID); err != nil {
			a.log.Printf("[WARN] Telegram notifications unavailable: %v\n", err)
		} else {
			channels = append(channels, t)
		}
	}

	switch len(channels) {
	case 0:
		return nil
	case 1:
		return channels[0]
	}
	return channels
}
