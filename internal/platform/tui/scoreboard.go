package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/termfolio/pixelsmash/internal/leaderboard"
)

// Scoreboard layout constants
const (
	rankColumnWidth    = 4
	countryColumnWidth = 24
	totalColumnWidth   = 14
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4040"))
	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff00"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4040"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
)

// scoreboard is the game-over panel: the final score, the state of the
// score submission and the country leaderboard.
type scoreboard struct {
	table  table.Model
	help   help.Model
	keys   KeyMap
	width  int
	height int

	pending bool
	result  *leaderboard.Result
	err     error
	best    int
}

func newScoreboard(keys KeyMap, width, height int) *scoreboard {
	b := &scoreboard{
		help:   help.New(),
		keys:   keys,
		width:  width,
		height: height,
	}
	b.table = b.createTable()
	return b
}

// createTable builds the leaderboard table.
func (b *scoreboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: rankColumnWidth},
		{Title: "Country", Width: countryColumnWidth},
		{Title: "Total", Width: totalColumnWidth},
	}

	return table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(leaderboard.DisplayLimit+1),
	)
}

// tableStyles highlights the cursor row only when it is the player's country.
func tableStyles(highlight bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	if highlight {
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	return s
}

// reset clears the panel for a new match. The best score survives.
func (b *scoreboard) reset() {
	b.pending = false
	b.result = nil
	b.err = nil
	b.table.SetRows(nil)
}

func (b *scoreboard) resize(width, height int) {
	b.width = width
	b.height = height
	b.help.Width = width
}

// submitting marks a submission as running.
func (b *scoreboard) submitting() {
	b.pending = true
	b.err = nil
}

// setResult shows a finished submission.
func (b *scoreboard) setResult(res leaderboard.Result) {
	b.pending = false
	b.err = nil
	b.result = &res

	top := res.Top(leaderboard.DisplayLimit)
	rows := make([]table.Row, len(top))
	for i, e := range top {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			leaderboard.CountryFlag(e.CountryCode) + " " + leaderboard.CountryName(e.CountryCode),
			leaderboard.FormatScore(e.TotalScore),
		}
	}
	b.table.SetRows(rows)

	highlight := res.NewRank > 0 && res.NewRank <= len(rows)
	b.table.SetStyles(tableStyles(highlight))
	if highlight {
		b.table.SetCursor(res.NewRank - 1)
	} else {
		b.table.SetCursor(0)
	}
}

// setError shows a failed submission.
func (b *scoreboard) setError(err error) {
	b.pending = false
	b.err = err
}

// active reports whether the panel has anything to show beyond the score.
func (b *scoreboard) active() bool {
	return b.pending || b.result != nil || b.err != nil || b.best > 0
}

// View renders the panel for a finished match.
func (b *scoreboard) View(score, level int) string {
	parts := []string{
		titleStyle.Render("GAME OVER"),
		"",
		fmt.Sprintf("Score %s  ·  Level %d", humanize.Comma(int64(score)), level),
	}
	if b.best > 0 {
		parts = append(parts, subtleStyle.Render("Best on this machine: "+humanize.Comma(int64(b.best))))
	}
	parts = append(parts, "")

	switch {
	case b.pending:
		parts = append(parts, subtleStyle.Render("Submitting score..."))
	case b.err != nil:
		parts = append(parts,
			errorStyle.Render("Could not reach the leaderboard"),
			subtleStyle.Render(b.err.Error()),
			"",
			"Press S to retry",
		)
	case b.result != nil:
		parts = append(parts, b.resultLines()...)
		parts = append(parts, "", b.table.View())
	case score <= 0:
		parts = append(parts, subtleStyle.Render("No points, nothing to submit"))
	}

	parts = append(parts, "", b.help.ShortHelpView([]key.Binding{b.keys.Restart, b.keys.Retry, b.keys.Quit}))
	panel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))

	if b.width <= 0 || b.height <= 0 {
		return panel
	}
	return lipgloss.Place(b.width, b.height, lipgloss.Center, lipgloss.Center, panel)
}

func (b *scoreboard) resultLines() []string {
	res := b.result
	flag := leaderboard.CountryFlag(res.Country)

	total := fmt.Sprintf("%s %s  %s %s = %s",
		flag,
		res.Country,
		leaderboard.FormatScore(res.PreviousScore),
		gainStyle.Render("(+"+humanize.Comma(int64(res.ScoreGained))+")"),
		leaderboard.FormatScore(res.NewScore),
	)
	change := res.Change.Icon() + " " + res.Change.Describe(res.PreviousRank, res.NewRank)
	return []string{total, change}
}
