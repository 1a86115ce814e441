package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/config"
	"trivia-game-service/internal/domain"
	"trivia-game-service/internal/infra/memory"
)

// NewPlayCmd runs a single-player game in the terminal against the built-in
// question bank. High scores go to Postgres or Redis when configured.
func NewPlayCmd(configPath *string) *cobra.Command {
	var mode, difficulty string
	var count int
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a trivia game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			settings, err := parseSettings(mode, difficulty, count)
			if err != nil {
				return err
			}
			b, err := openBackends(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer b.Close()

			g := &terminalGame{
				in:       cmd.InOrStdin(),
				out:      cmd.OutOrStdout(),
				settings: settings,
				source:   memory.NewQuestionBank(memory.SampleQuestions()),
				engine:   app.NewEngine(b.highScores(), app.WithInitialLives(cfg.Game.Lives)),
				tick:     config.TTLDuration(cfg.Game.Tick, time.Second),
			}
			return g.run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeClassic), "one of "+joinNames(domain.Modes))
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyAny), "one of "+joinNames(domain.Difficulties))
	cmd.Flags().IntVar(&count, "count", 0, "number of questions (0 uses the mode default)")
	return cmd
}

func joinNames[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

func parseSettings(mode, difficulty string, count int) (domain.GameSettings, error) {
	m, err := domain.ParseMode(mode)
	if err != nil {
		return domain.GameSettings{}, err
	}
	d, err := domain.ParseDifficulty(difficulty)
	if err != nil {
		return domain.GameSettings{}, err
	}
	settings := domain.GameSettings{Mode: m, Difficulty: d}
	if count != 0 {
		settings.NumberOfQuestions = &count
	}
	return settings, settings.Validate()
}

type terminalGame struct {
	in       io.Reader
	out      io.Writer
	settings domain.GameSettings
	source   app.QuestionSource
	engine   *app.Engine
	tick     time.Duration
}

// run owns the engine: input lines and countdown ticks are handled by one loop.
func (g *terminalGame) run(ctx context.Context) error {
	if err := g.engine.StartGame(ctx, g.settings, g.source); err != nil {
		return err
	}
	g.renderBest()
	g.renderQuestion()

	done := make(chan struct{})
	defer close(done)
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(g.in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-done:
				return
			}
		}
	}()

	var ticks <-chan time.Time
	if _, timed := g.settings.Mode.TimePerQuestion(); timed {
		ticker := time.NewTicker(g.tick)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(g.out, "Bye!")
				return nil
			}
			quit, err := g.handle(ctx, line)
			if err != nil {
				return err
			}
			if quit {
				fmt.Fprintln(g.out, "Bye!")
				return nil
			}
		case <-ticks:
			before := g.engine.State()
			err := g.engine.TimerTick(ctx)
			after := g.engine.State()
			if !before.HasAnswered && after.HasAnswered {
				g.renderResult()
			}
			g.warn(err)
		}
	}
}

func (g *terminalGame) handle(ctx context.Context, line string) (bool, error) {
	switch strings.ToLower(line) {
	case "q", "quit":
		return true, nil
	case "r", "restart":
		if err := g.engine.StartGame(ctx, g.settings, g.source); err != nil {
			return false, err
		}
		g.renderBest()
		g.renderQuestion()
		return false, nil
	}

	state := g.engine.State()
	switch {
	case state.IsGameOver:
		fmt.Fprintln(g.out, "Type r to play again or q to quit.")
	case state.HasAnswered:
		g.warn(g.engine.NextQuestion(ctx))
		if g.engine.State().IsGameOver {
			g.renderGameOver()
		} else {
			g.renderQuestion()
		}
	default:
		q, _ := state.CurrentQuestion()
		// Numbers always select by position; anything else must be the option text.
		option := line
		if n, err := strconv.Atoi(line); err == nil {
			if n < 1 || n > len(q.Options) {
				fmt.Fprintf(g.out, "Pick a number between 1 and %d.\n", len(q.Options))
				return false, nil
			}
			option = q.Options[n-1]
		}
		err := g.engine.Answer(ctx, option)
		if errors.Is(err, domain.ErrInvalidOption) {
			fmt.Fprintf(g.out, "Pick a number between 1 and %d.\n", len(q.Options))
			return false, nil
		}
		g.renderResult()
		g.warn(err)
	}
	return false, nil
}

func (g *terminalGame) renderBest() {
	state := g.engine.State()
	label := fmt.Sprintf("%s (%s)", state.Settings.Mode.Title(), state.Settings.Difficulty)
	if state.Best == nil {
		fmt.Fprintf(g.out, "No high score yet for %s.\n", label)
		return
	}
	fmt.Fprintf(g.out, "Best score for %s: %d, set %s\n", label, state.Best.Value, state.Best.Date.Format("2006-01-02"))
}

func (g *terminalGame) renderQuestion() {
	state := g.engine.State()
	q, ok := state.CurrentQuestion()
	if !ok {
		return
	}
	status := fmt.Sprintf("Score %d", state.Score)
	if rules, _ := state.Settings.Mode.Rules(); rules.TracksLives {
		status += fmt.Sprintf(", lives %d", state.Lives)
	}
	if state.TimeRemaining != nil {
		status += fmt.Sprintf(", %ds", *state.TimeRemaining)
	}
	fmt.Fprintf(g.out, "\nQuestion %d/%d (%s)\n%s\n", state.Index+1, len(state.Questions), status, q.Text)
	for i, o := range q.Options {
		fmt.Fprintf(g.out, "  %d) %s\n", i+1, o)
	}
}

func (g *terminalGame) renderResult() {
	state := g.engine.State()
	q, ok := state.CurrentQuestion()
	if !ok {
		return
	}
	switch {
	case state.SelectedOption == nil:
		fmt.Fprintf(g.out, "Time's up! The answer was %s.\n", q.Answer)
	case *state.SelectedOption == q.Answer:
		fmt.Fprintln(g.out, "Correct!")
	default:
		fmt.Fprintf(g.out, "Wrong. The answer was %s.\n", q.Answer)
	}
	if state.IsGameOver {
		g.renderGameOver()
		return
	}
	fmt.Fprintln(g.out, "Press enter for the next question.")
}

func (g *terminalGame) renderGameOver() {
	state := g.engine.State()
	if state.Reason == domain.ReasonOutOfLives {
		fmt.Fprintln(g.out, "Out of lives!")
	}
	fmt.Fprintf(g.out, "Game over. Final score: %d/%d\n", state.Score, len(state.Questions))
	switch {
	case state.NewHighScore:
		fmt.Fprintln(g.out, "New high score!")
	case state.Best != nil:
		fmt.Fprintf(g.out, "High score: %d\n", state.Best.Value)
	}
	fmt.Fprintln(g.out, "Type r to play again or q to quit.")
}

func (g *terminalGame) warn(err error) {
	if err != nil {
		fmt.Fprintf(g.out, "warning: %v\n", err)
	}
}
