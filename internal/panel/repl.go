package panel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/thomas-vilte/branchmate/internal/ui"
)

// Run renders the panel and reads commands until quit or Ctrl+D.
func Run(ctx context.Context, s *Session) error {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.Commands()))
	for _, c := range s.Commands() {
		items = append(items, readline.PcItem(c))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            ui.Info.Sprint("branchmate> "),
		AutoComplete:      readline.NewPrefixCompleter(items...),
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
		Stdout:            s.cfg.Out,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	if err := s.Start(ctx); err != nil {
		return err
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if !errors.Is(err, io.EOF) {
				return err
			}
			if err := s.Execute(ctx, "quit"); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			s.goodbye()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, io.EOF) {
				s.goodbye()
				return nil
			}
			ui.HandleAppError(s.cfg.Out, err, s.cfg.Translations)
		}
	}
}

func (s *Session) goodbye() {
	_, _ = fmt.Fprintln(s.cfg.Out, s.cfg.Translations.GetMessage("panel_goodbye", 0, nil))
}
