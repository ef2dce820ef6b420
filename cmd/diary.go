package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/mood-journal/internal/model"
	"github.com/Tiliavir/mood-journal/internal/timecalc"
)

const defaultMood = 5.0

// entryFlags are the editable fields shared by diary and draft commands.
// Only flags the user actually set are applied to an entry.
type entryFlags struct {
	mood   float64
	text   string
	images []string
	videos []string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.mood, "mood", defaultMood, "Mood from 0 to 10")
	cmd.Flags().StringVar(&f.text, "text", "", `Entry text ("-" reads stdin)`)
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "Path of an image to attach (repeatable)")
	cmd.Flags().StringArrayVar(&f.videos, "video", nil, "Video reference to attach (repeatable)")
}

func (f *entryFlags) apply(cmd *cobra.Command, e model.DiaryEntry) (model.DiaryEntry, error) {
	flags := cmd.Flags()
	if flags.Changed("mood") {
		e = e.WithMood(f.mood)
	}
	if flags.Changed("text") {
		text := f.text
		if text == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return e, fmt.Errorf("reading text from stdin: %w", err)
			}
			text = string(data)
		}
		e = e.WithContent(text)
	}
	images, videos := e.Images, e.VideoRefs
	if flags.Changed("image") {
		var err error
		if images, err = readImages(f.images); err != nil {
			return e, err
		}
	}
	if flags.Changed("video") {
		videos = f.videos
	}
	return e.WithMedia(images, videos), nil
}

// readImages loads every image file. An unreadable path is a usage error.
func readImages(paths []string) ([][]byte, error) {
	images := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: reading image %s: %v", model.ErrValidation, p, err)
		}
		images = append(images, data)
	}
	return images, nil
}

var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Create, edit, show, list and delete diary entries",
}

var (
	diaryNewFlags   entryFlags
	diaryFromDraft  bool
	diaryEditFlags  entryFlags
	diaryClearMedia bool
	diaryListLimit  int
)

var diaryNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Write a new diary entry",
	Args:  cobra.NoArgs,
	RunE:  runDiaryNew,
}

var diaryEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing entry; its date is kept",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiaryEdit,
}

var diaryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiaryShow,
}

var diaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDiaryList,
}

var diaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry and its media",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiaryDelete,
}

func init() {
	diaryNewFlags.register(diaryNewCmd)
	diaryNewCmd.Flags().BoolVar(&diaryFromDraft, "from-draft", false, "Start from the saved draft")

	diaryEditFlags.register(diaryEditCmd)
	diaryEditCmd.Flags().BoolVar(&diaryClearMedia, "clear-media", false, "Remove all images and videos")

	diaryListCmd.Flags().IntVar(&diaryListLimit, "limit", 0, "Show at most this many entries (0 = all)")

	diaryCmd.AddCommand(diaryNewCmd, diaryEditCmd, diaryShowCmd, diaryListCmd, diaryDeleteCmd)
}

func runDiaryNew(cmd *cobra.Command, args []string) error {
	a := openApp(cmd.Context())
	defer a.Close()

	base := model.DiaryEntry{Mood: diaryNewFlags.mood}
	if diaryFromDraft {
		draft, err := a.Diary.Draft()
		exitOnErr(a, err)
		if draft == nil {
			fmt.Fprintln(os.Stderr, "No draft saved.")
			a.Close()
			os.Exit(1)
		}
		base = *draft
	}

	entry, err := diaryNewFlags.apply(cmd, base)
	exitOnErr(a, err)

	created, err := a.Diary.Create(entry.Content, entry.Mood, entry.Images, entry.VideoRefs)
	exitOnErr(a, err)

	fmt.Printf("Created entry %s (mood %.1f).\n", created.ID, created.Mood)
	return nil
}

func runDiaryEdit(cmd *cobra.Command, args []string) error {
	a := openApp(cmd.Context())
	defer a.Close()

	entry, err := a.Diary.Get(args[0])
	exitOnErr(a, err)
	if diaryClearMedia {
		entry = entry.WithMedia(nil, nil)
	}
	entry, err = diaryEditFlags.apply(cmd, entry)
	exitOnErr(a, err)

	updated, err := a.Diary.Update(entry)
	exitOnErr(a, err)

	fmt.Printf("Updated entry %s.\n", updated.ID)
	return nil
}

func runDiaryShow(cmd *cobra.Command, args []string) error {
	a := openApp(cmd.Context())
	defer a.Close()

	entry, err := a.Diary.Get(args[0])
	exitOnErr(a, err)

	printEntry(os.Stdout, entry)
	return nil
}

func runDiaryList(cmd *cobra.Command, args []string) error {
	a := openApp(cmd.Context())
	defer a.Close()

	entries := a.Diary.List()
	if diaryListLimit > 0 && len(entries) > diaryListLimit {
		entries = entries[:diaryListLimit]
	}
	printDiaryList(os.Stdout, entries)
	return nil
}

func runDiaryDelete(cmd *cobra.Command, args []string) error {
	a := openApp(cmd.Context())
	defer a.Close()

	exitOnErr(a, a.Diary.Delete(args[0]))
	fmt.Printf("Deleted entry %s.\n", args[0])
	return nil
}

// printDiaryList groups entries by local day and prints one line per entry.
func printDiaryList(w io.Writer, entries []model.DiaryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var currentDay string
	for _, e := range entries {
		local := e.Date.Local()
		day := timecalc.DayKey(local)
		if day != currentDay {
			fmt.Fprintln(w, titleStyle.Render(day))
			currentDay = day
		}

		media := mediaSummary(e)
		if media != "" {
			media = "  [" + media + "]"
		}
		fmt.Fprintf(w, "  %s  %s  %s%s  %s\n",
			local.Format("15:04"),
			moodStyle.Render(moodBar(e.Mood)),
			preview(e.Content, 40),
			media,
			hintStyle.Render(e.ID),
		)
	}
}

// printEntry prints every field of e followed by its full text.
func printEntry(w io.Writer, e model.DiaryEntry) {
	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(value))
	}
	if e.ID != "" {
		row("ID", e.ID)
	}
	if !e.Date.IsZero() {
		row("Date", e.Date.Local().Format(time.DateTime))
	}
	row("Mood", moodStyle.Render(moodBar(e.Mood)))
	for i, img := range e.Images {
		row(fmt.Sprintf("Image %d", i+1), fmt.Sprintf("%d bytes", len(img)))
	}
	for _, v := range e.VideoRefs {
		row("Video", v)
	}
	if content := strings.TrimSpace(e.Content); content != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, content)
	}
}
