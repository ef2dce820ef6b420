package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/mood-journal/internal/model"
)

var (
	exportFormat string
	exportStats  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export diary entries (or daily statistics) to stdout",
	Long: `Export every diary entry, newest first. Image bytes are not exported;
CSV and Markdown list the image count, JSON includes them base64-encoded.
With --stats the per-day statistics are exported instead.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
	exportCmd.Flags().BoolVar(&exportStats, "stats", false, "Export daily statistics instead of diary entries")
}

func runExport(cmd *cobra.Command, args []string) error {
	switch exportFormat {
	case "csv", "json", "md":
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q: use csv, json or md\n", exportFormat)
		os.Exit(1)
	}

	a := openApp(cmd.Context())
	defer a.Close()

	var err error
	if exportStats {
		err = exportDays(os.Stdout, exportFormat, a.Stats.Days())
	} else {
		err = exportEntries(os.Stdout, exportFormat, a.Diary.List())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error encoding export:", err)
		a.Close()
		os.Exit(2)
	}
	return nil
}

func exportEntries(w io.Writer, format string, entries []model.DiaryEntry) error {
	switch format {
	case "json":
		return writeIndentedJSON(w, entries)
	case "md":
		printMarkdown(w, entries)
	default:
		printCSV(w, entries)
	}
	return nil
}

func exportDays(w io.Writer, format string, days []model.DayStats) error {
	switch format {
	case "json":
		return writeIndentedJSON(w, days)
	case "md":
		fmt.Fprintln(w, "| Day | Focus | Rest | Meditation | Distance (km) |")
		fmt.Fprintln(w, "|---|---|---|---|---|")
		for _, d := range days {
			fmt.Fprintf(w, "| %s | %d | %d | %d | %.2f |\n", d.Day,
				d.Stats.FocusSeconds, d.Stats.RestSeconds, d.Stats.MeditationSeconds, d.Stats.DrivingDistanceKm)
		}
	default:
		fmt.Fprintln(w, "day,focus_seconds,rest_seconds,meditation_seconds,driving_distance_km")
		for _, d := range days {
			fmt.Fprintf(w, "%s,%d,%d,%d,%.2f\n", d.Day,
				d.Stats.FocusSeconds, d.Stats.RestSeconds, d.Stats.MeditationSeconds, d.Stats.DrivingDistanceKm)
		}
	}
	return nil
}

func writeIndentedJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printCSV(w io.Writer, entries []model.DiaryEntry) {
	fmt.Fprintln(w, "id,date,mood,content,images,videos")
	for _, e := range entries {
		fmt.Fprintf(w, "%s,%s,%.1f,%s,%d,%s\n",
			csvEscape(e.ID),
			csvEscape(e.Date.Format(time.RFC3339)),
			e.Mood,
			csvEscape(e.Content),
			len(e.Images),
			csvEscape(strings.Join(e.VideoRefs, " ")),
		)
	}
}

// printMarkdown writes one section per entry, newest first.
func printMarkdown(w io.Writer, entries []model.DiaryEntry) {
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "## %s · mood %.1f\n\n", e.Date.Local().Format("2006-01-02 15:04"), e.Mood)
		if content := strings.TrimSpace(e.Content); content != "" {
			fmt.Fprintln(w, content)
			fmt.Fprintln(w)
		}
		if media := mediaSummary(e); media != "" {
			fmt.Fprintf(w, "_%s_\n", media)
		}
		for _, v := range e.VideoRefs {
			fmt.Fprintf(w, "- video: %s\n", v)
		}
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
