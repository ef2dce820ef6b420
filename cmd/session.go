package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/mood-journal/internal/config"
	"github.com/Tiliavir/mood-journal/internal/session"
	"github.com/Tiliavir/mood-journal/internal/stats"
	"github.com/Tiliavir/mood-journal/internal/timecalc"
)

var sessionCommandNames = map[session.Kind]string{
	session.Focus:      "focus",
	session.Rest:       "rest",
	session.Meditation: "meditate",
}

// newSessionCmd builds the live timer command for one session kind.
func newSessionCmd(kind session.Kind) *cobra.Command {
	var minutes int
	c := &cobra.Command{
		Use:   sessionCommandNames[kind],
		Short: fmt.Sprintf("Run a %s timer and record it in today's statistics", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := openApp(cmd.Context())
			defer a.Close()

			target := defaultMinutes(kind, a.Config.Session)
			if cmd.Flags().Changed("minutes") {
				target = minutes
			}
			if target < 0 {
				fmt.Fprintln(os.Stderr, "--minutes must be >= 0")
				os.Exit(1)
			}

			sess := session.New(kind, target)
			if _, err := tea.NewProgram(newTimerModel(sess)).Run(); err != nil {
				// Whatever was counted before the terminal failed is still flushed below.
				fmt.Fprintln(os.Stderr, "timer:", err)
			}

			u, ok := sess.Finish(a.Config.Session.DistanceRateKmh)
			if !ok {
				return nil
			}
			_, err := a.Stats.Update(cmd.Context(), u)
			exitOnErr(a, err)

			fmt.Println(sessionSummary(sess))
			return nil
		},
	}
	c.Flags().IntVar(&minutes, "minutes", 0, "Countdown length in minutes (0 counts up until stopped)")
	return c
}

func defaultMinutes(kind session.Kind, cfg config.SessionConfig) int {
	switch kind {
	case session.Rest:
		return cfg.RestMinutes
	case session.Meditation:
		return cfg.MeditationMinutes
	default:
		return 0
	}
}

func sessionSummary(s *session.Session) string {
	if s.Elapsed() < stats.MinDurationSeconds {
		return fmt.Sprintf("Session lasted %s; under a minute, nothing recorded.", formatElapsed(s.Elapsed()))
	}
	return fmt.Sprintf("Recorded %s of %s.", formatElapsed(s.Elapsed()), s.Kind())
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// timerModel drives a session one tick per second until it finishes or the
// user stops it.
type timerModel struct {
	sess *session.Session
}

func newTimerModel(s *session.Session) timerModel {
	return timerModel{sess: s}
}

func (m timerModel) Init() tea.Cmd {
	return tick()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.sess.Tick() {
			return m, tea.Quit
		}
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "esc", "enter", "ctrl+c":
			m.sess.Stop()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m timerModel) View() string {
	var b strings.Builder
	title := strings.ToUpper(string(m.sess.Kind()[:1])) + string(m.sess.Kind()[1:])
	if m.sess.Countdown() {
		title += " (remaining)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(timerStyle.Render(timecalc.FormatDurationHHMMSS(m.sess.Display())))
	b.WriteString("\n")
	if m.sess.Done() {
		b.WriteString(hintStyle.Render("done"))
	} else {
		b.WriteString(hintStyle.Render("q / enter: stop and record"))
	}
	b.WriteString("\n")
	return b.String()
}
