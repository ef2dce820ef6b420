package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/mood-journal/internal/app"
	"github.com/Tiliavir/mood-journal/internal/config"
	"github.com/Tiliavir/mood-journal/internal/model"
	"github.com/Tiliavir/mood-journal/internal/session"
	"github.com/Tiliavir/mood-journal/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "mj",
	Short: "Mood journal – diary entries, drafts and daily wellbeing stats",
	Long: `mj is a single-binary, file-based mood journal.
Diary entries, the current draft and daily focus/rest/meditation statistics
are stored as plain files in ~/.mj/ (see ~/.mj/config.json).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(diaryCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(newSessionCmd(session.Focus))
	rootCmd.AddCommand(newSessionCmd(session.Rest))
	rootCmd.AddCommand(newSessionCmd(session.Meditation))
	rootCmd.AddCommand(exportCmd)
}

// openApp loads the configuration and wires the services. Any failure here is
// a storage/config problem and ends the process with exit code 2.
func openApp(ctx context.Context) *app.App {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	a, err := app.New(ctx, cfg, app.NewLogger(cfg.Log))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return a
}

// exitCode maps an error to the process exit code: 1 for bad input or unknown
// ids, 2 for everything storage related.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, model.ErrValidation), errors.Is(err, storage.ErrNotFound):
		return 1
	default:
		return 2
	}
}

// exitOnErr prints err and exits with the matching code. A nil err is a no-op.
func exitOnErr(a *app.App, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	if a != nil {
		a.Close()
	}
	os.Exit(exitCode(err))
}
