package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/mood-journal/internal/model"
	"github.com/Tiliavir/mood-journal/internal/stats"
	"github.com/Tiliavir/mood-journal/internal/timecalc"
)

var (
	statsDay   string
	statsWeek  bool
	statsTotal bool

	statsAddFocus      int64
	statsAddRest       int64
	statsAddMeditation int64
	statsAddDistance   float64

	statsClearYes bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus, rest, meditation and distance statistics",
	Long: `Show statistics for today (default), a given day, the current week or all
time. Durations shorter than a minute are never recorded.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add time or distance to today's statistics",
	Args:  cobra.NoArgs,
	RunE:  runStatsAdd,
}

var statsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all statistics",
	Args:  cobra.NoArgs,
	RunE:  runStatsClear,
}

func init() {
	statsCmd.Flags().StringVar(&statsDay, "day", "", "Show the given day (YYYY-MM-DD)")
	statsCmd.Flags().BoolVar(&statsWeek, "week", false, "Show the current ISO week")
	statsCmd.Flags().BoolVar(&statsTotal, "total", false, "Show all-time totals")
	statsCmd.MarkFlagsMutuallyExclusive("day", "week", "total")

	statsAddCmd.Flags().Int64Var(&statsAddFocus, "focus", 0, "Focus seconds")
	statsAddCmd.Flags().Int64Var(&statsAddRest, "rest", 0, "Rest seconds")
	statsAddCmd.Flags().Int64Var(&statsAddMeditation, "meditation", 0, "Meditation seconds")
	statsAddCmd.Flags().Float64Var(&statsAddDistance, "distance", 0, "Driving distance in km")

	statsClearCmd.Flags().BoolVar(&statsClearYes, "yes", false, "Confirm deleting every recorded day")

	statsCmd.AddCommand(statsAddCmd, statsClearCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	now := time.Now()

	a := openApp(cmd.Context())
	defer a.Close()

	switch {
	case statsTotal:
		printStats(os.Stdout, "All time", a.Stats.Totals())
	case statsWeek:
		from, to := timecalc.WeekRange(now)
		printStats(os.Stdout, "Week "+timecalc.ISOWeekLabel(now), a.Stats.Range(from, to))
	case statsDay != "":
		day, err := timecalc.ParseDay(statsDay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --day %q: expected YYYY-MM-DD\n", statsDay)
			os.Exit(1)
		}
		printStats(os.Stdout, statsDay, a.Stats.StatsFor(day))
	default:
		printStats(os.Stdout, "Today", a.Stats.Today())
	}
	return nil
}

func runStatsAdd(cmd *cobra.Command, args []string) error {
	u, skipped := statsUpdateFromFlags(cmd)
	if u == (model.StatsUpdate{}) {
		fmt.Fprintln(os.Stderr, "Nothing to add: pass --focus, --rest, --meditation or --distance.")
		os.Exit(1)
	}

	a := openApp(cmd.Context())
	defer a.Close()

	today, err := a.Stats.Update(cmd.Context(), u)
	exitOnErr(a, err)

	if skipped {
		fmt.Printf("Durations under %ds are not recorded.\n", stats.MinDurationSeconds)
	}
	printStats(os.Stdout, "Today", today)
	return nil
}

// statsUpdateFromFlags builds an update from the flags the user set. skipped
// reports whether any given duration falls below the recording floor.
func statsUpdateFromFlags(cmd *cobra.Command) (u model.StatsUpdate, skipped bool) {
	flags := cmd.Flags()
	duration := func(name string, v int64) *int64 {
		if !flags.Changed(name) {
			return nil
		}
		if v < stats.MinDurationSeconds {
			skipped = true
		}
		return &v
	}
	u.FocusSeconds = duration("focus", statsAddFocus)
	u.RestSeconds = duration("rest", statsAddRest)
	u.MeditationSeconds = duration("meditation", statsAddMeditation)
	if flags.Changed("distance") {
		km := statsAddDistance
		u.DrivingDistanceKm = &km
	}
	return u, skipped
}

func runStatsClear(cmd *cobra.Command, args []string) error {
	if !statsClearYes {
		fmt.Fprintln(os.Stderr, "This deletes every recorded day. Re-run with --yes to confirm.")
		os.Exit(1)
	}

	a := openApp(cmd.Context())
	defer a.Close()

	exitOnErr(a, a.Stats.ClearAll(cmd.Context()))
	fmt.Println("Statistics cleared.")
	return nil
}

func printStats(w io.Writer, title string, st model.DailyStats) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if st.IsZero() {
		fmt.Fprintln(w, hintStyle.Render("Nothing recorded."))
		return
	}
	row := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(value))
	}
	row("Focus", timecalc.FormatDuration(st.FocusSeconds))
	row("Rest", timecalc.FormatDuration(st.RestSeconds))
	row("Meditation", timecalc.FormatDuration(st.MeditationSeconds))
	row("Distance", fmt.Sprintf("%.1f km", st.DrivingDistanceKm))
}
