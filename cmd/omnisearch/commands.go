package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"

	"omnisearch/internal/catalog"
	"omnisearch/internal/config"
	"omnisearch/internal/domain"
	"omnisearch/internal/search"
	"omnisearch/internal/selection"
	"omnisearch/internal/ui"
)

func runCommand(c *cli.Context) error {
	env, err := newEnvironment(c, catalog.SystemLauncher{})
	if err != nil {
		return err
	}
	defer env.Close()

	var model *ui.Model
	p := env.newPalette(func() {
		if model != nil {
			model.Refresh()
		}
	})
	defer p.Destroy()

	model = ui.NewModel(p, env.bus, env.cfg.UI)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if model.LastOutcome() == selection.OutcomeFailed {
		return cli.Exit(fmt.Sprintf("action failed, see %s", c.String("log-file")), 1)
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	env, err := newEnvironment(c, catalog.SystemLauncher{})
	if err != nil {
		return err
	}
	defer env.Close()

	changed := make(chan struct{}, 1)
	p := env.newPalette(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer p.Destroy()

	p.Open()
	if c.Bool("regex") && !p.RegexMode() {
		p.ToggleRegex()
	}
	p.SetFilter(search.Filter{Group: c.String("group"), Type: c.String("type")})
	p.SetQuery(strings.Join(c.Args().Slice(), " "))

	if p.Loading() {
		wait := env.cfg.Search.Debounce() + env.cfg.Catalog.RemoteTimeout()
		select {
		case <-changed:
		case <-time.After(wait):
			log.Printf("Remote search did not answer within %s", wait)
		}
	}

	return printResults(c.App.Writer, p.Results(), c.Int("limit"))
}

// printResults writes results as a table of group, label, score and the
// field that matched
func printResults(w io.Writer, results []domain.ScoredResult, limit int) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("GROUP", "LABEL", "SCORE", "MATCH")
	for _, r := range results {
		match := string(r.MatchedField)
		if r.MatchedField == domain.FieldKeyword || r.MatchedField == domain.FieldAlias {
			match += ":" + r.MatchedText
		}
		t.Row(domain.GroupOf(r.Item), r.Item.Label, formatScore(r.Score), match)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

func formatScore(score float64) string {
	if score < -1e300 {
		return "-"
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func configInitCommand(c *cli.Context) error {
	path := configPath(c)
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return cli.Exit(fmt.Sprintf("%s already exists (use --force to overwrite)", path), 1)
	}

	svc := config.NewConfigServiceWithBus(nil, path)
	if err := svc.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func configPathCommand(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, configPath(c))
	return nil
}
