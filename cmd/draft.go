package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/mood-journal/internal/model"
)

var draftSaveFlags entryFlags

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Keep one unfinished entry between sessions",
}

var draftSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save or amend the draft",
	Long: `Save the in-progress entry. Flags that are not given keep the value
already stored in the draft. Writing a diary entry clears the draft.`,
	Args: cobra.NoArgs,
	RunE: runDraftSave,
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the draft",
	Args:  cobra.NoArgs,
	RunE:  runDraftShow,
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the draft",
	Args:  cobra.NoArgs,
	RunE:  runDraftClear,
}

func init() {
	draftSaveFlags.register(draftSaveCmd)
	draftCmd.AddCommand(draftSaveCmd, draftShowCmd, draftClearCmd)
}

func runDraftSave(cmd *cobra.Command, args []string) error {
	a := openApp(cmd.Context())
	defer a.Close()

	current, err := a.Diary.Draft()
	exitOnErr(a, err)
	base := model.DiaryEntry{Mood: draftSaveFlags.mood}
	if current != nil {
		base = *current
	}

	draft, err := draftSaveFlags.apply(cmd, base)
	exitOnErr(a, err)
	if draft.Mood < model.MinMood || draft.Mood > model.MaxMood {
		exitOnErr(a, fmt.Errorf("%w: mood %.1f outside [%.0f, %.0f]",
			model.ErrValidation, draft.Mood, model.MinMood, model.MaxMood))
	}

	exitOnErr(a, a.Diary.SetDraft(&draft))
	fmt.Println("Draft saved.")
	return nil
}

func runDraftShow(cmd *cobra.Command, args []string) error {
	a := openApp(cmd.Context())
	defer a.Close()

	draft, err := a.Diary.Draft()
	exitOnErr(a, err)
	if draft == nil {
		fmt.Println("No draft saved.")
		return nil
	}
	printEntry(os.Stdout, *draft)
	return nil
}

func runDraftClear(cmd *cobra.Command, args []string) error {
	a := openApp(cmd.Context())
	defer a.Close()

	exitOnErr(a, a.Diary.SetDraft(nil))
	fmt.Println("Draft cleared.")
	return nil
}
