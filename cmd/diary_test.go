package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Tiliavir/mood-journal/internal/model"
	"github.com/Tiliavir/mood-journal/internal/storage"
)

func newFlagCmd(t *testing.T) (*cobra.Command, *entryFlags) {
	t.Helper()
	var f entryFlags
	c := &cobra.Command{Use: "test"}
	f.register(c)
	return c, &f
}

func TestEntryFlagsApplyOnlyChanged(t *testing.T) {
	c, f := newFlagCmd(t)
	if err := c.Flags().Set("text", "new text"); err != nil {
		t.Fatal(err)
	}

	base := model.DiaryEntry{
		ID:        "e1",
		Date:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local),
		Mood:      9,
		Content:   "old",
		Images:    [][]byte{{1}},
		VideoRefs: []string{"v"},
	}
	got, err := f.apply(c, base)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.Content != "new text" {
		t.Errorf("Content = %q", got.Content)
	}
	if got.Mood != 9 {
		t.Errorf("Mood = %v, want unchanged 9 (flag default must not apply)", got.Mood)
	}
	if got.ID != "e1" || !got.Date.Equal(base.Date) {
		t.Errorf("identity changed: %s %v", got.ID, got.Date)
	}
	if len(got.Images) != 1 || len(got.VideoRefs) != 1 {
		t.Errorf("media changed: %d images, %v", len(got.Images), got.VideoRefs)
	}
}

func TestEntryFlagsApplyMediaAndStdin(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(img, []byte{0xff, 0xd8}, 0o600); err != nil {
		t.Fatal(err)
	}

	c, f := newFlagCmd(t)
	c.SetIn(strings.NewReader("from stdin\n"))
	for _, kv := range [][2]string{{"text", "-"}, {"mood", "6.5"}, {"image", img}, {"video", "ref-1"}, {"video", "ref-2"}} {
		if err := c.Flags().Set(kv[0], kv[1]); err != nil {
			t.Fatalf("Set %s: %v", kv[0], err)
		}
	}

	got, err := f.apply(c, model.DiaryEntry{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.Content != "from stdin\n" || got.Mood != 6.5 {
		t.Errorf("got content %q mood %v", got.Content, got.Mood)
	}
	if len(got.Images) != 1 || !bytes.Equal(got.Images[0], []byte{0xff, 0xd8}) {
		t.Errorf("Images = %v", got.Images)
	}
	if strings.Join(got.VideoRefs, ",") != "ref-1,ref-2" {
		t.Errorf("VideoRefs = %v", got.VideoRefs)
	}
}

func TestReadImagesMissingFile(t *testing.T) {
	_, err := readImages([]string{filepath.Join(t.TempDir(), "nope.jpg")})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestPrintDiaryList(t *testing.T) {
	var buf bytes.Buffer
	printDiaryList(&buf, nil)
	if !strings.Contains(buf.String(), "No entries found.") {
		t.Errorf("empty list output = %q", buf.String())
	}

	buf.Reset()
	entries := []model.DiaryEntry{
		{ID: "e3", Date: time.Date(2026, 3, 2, 21, 5, 0, 0, time.Local), Mood: 4, Content: "evening"},
		{ID: "e2", Date: time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local), Mood: 8, Content: "morning", Images: [][]byte{{1}}},
		{ID: "e1", Date: time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local), Mood: 6, Content: "lunch"},
	}
	printDiaryList(&buf, entries)
	out := buf.String()

	if n := strings.Count(out, "2026-03-02"); n != 1 {
		t.Errorf("day header 2026-03-02 printed %d times, want 1:\n%s", n, out)
	}
	for _, want := range []string{"2026-03-01", "21:05", "07:30", "[1 image]", "e3", "lunch"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "evening") > strings.Index(out, "lunch") {
		t.Errorf("entries not printed in the given order:\n%s", out)
	}
}

func TestPrintEntry(t *testing.T) {
	var buf bytes.Buffer
	printEntry(&buf, model.DiaryEntry{
		ID:        "e1",
		Date:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local),
		Mood:      7,
		Content:   "  body text  ",
		Images:    [][]byte{{1, 2, 3}},
		VideoRefs: []string{"clip"},
	})
	out := buf.String()
	for _, want := range []string{"e1", "2026-03-01 08:00:00", "7.0", "3 bytes", "clip", "body text"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// A draft has neither id nor date.
	buf.Reset()
	printEntry(&buf, model.DiaryEntry{Mood: 5, Content: "draft"})
	if strings.Contains(buf.String(), "ID") || strings.Contains(buf.String(), "Date") {
		t.Errorf("draft output shows id/date:\n%s", buf.String())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{fmt.Errorf("create: %w", model.ErrValidation), 1},
		{fmt.Errorf("get: %w", storage.ErrNotFound), 1},
		{&storage.IOError{Op: "write", Path: "/x", Err: os.ErrPermission}, 2},
		{errors.New("boom"), 2},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestStatsUpdateFromFlags(t *testing.T) {
	t.Cleanup(func() {
		statsAddCmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})

	u, skipped := statsUpdateFromFlags(statsAddCmd)
	if u != (model.StatsUpdate{}) || skipped {
		t.Fatalf("no flags: update = %+v skipped = %v", u, skipped)
	}

	for _, kv := range [][2]string{{"focus", "30"}, {"meditation", "600"}, {"distance", "2.5"}} {
		if err := statsAddCmd.Flags().Set(kv[0], kv[1]); err != nil {
			t.Fatal(err)
		}
	}
	u, skipped = statsUpdateFromFlags(statsAddCmd)
	if !skipped {
		t.Error("30s focus should be reported as below the floor")
	}
	if u.FocusSeconds == nil || *u.FocusSeconds != 30 {
		t.Errorf("FocusSeconds = %v", u.FocusSeconds)
	}
	if u.RestSeconds != nil {
		t.Errorf("RestSeconds = %v, want nil", *u.RestSeconds)
	}
	if u.MeditationSeconds == nil || *u.MeditationSeconds != 600 {
		t.Errorf("MeditationSeconds = %v", u.MeditationSeconds)
	}
	if u.DrivingDistanceKm == nil || *u.DrivingDistanceKm != 2.5 {
		t.Errorf("DrivingDistanceKm = %v", u.DrivingDistanceKm)
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, "Today", model.DailyStats{FocusSeconds: 6000, RestSeconds: 300, DrivingDistanceKm: 1.5})
	out := buf.String()
	for _, want := range []string{"Today", "1h 40m", "5m", "0s", "1.5 km"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printStats(&buf, "2020-01-01", model.DailyStats{})
	if !strings.Contains(buf.String(), "Nothing recorded.") || strings.Contains(buf.String(), "Focus") {
		t.Errorf("zero stats output = %q", buf.String())
	}
}
