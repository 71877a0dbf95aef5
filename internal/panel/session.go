package panel

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	domainErrors "github.com/thomas-vilte/branchmate/internal/errors"
	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/logger"
	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/ports"
	"github.com/thomas-vilte/branchmate/internal/services"
	"github.com/thomas-vilte/branchmate/internal/ui"
)

// emptyCell stands for an empty table cell in a tag command.
const emptyCell = "-"

type SessionConfig struct {
	Service      *services.NamingService
	Clipboard    ports.Clipboard
	Translations *i18n.Translations
	Out          io.Writer
	// Source is re-read on refresh. Nil when the ticket came from flags.
	Source   ports.PageSource
	Location string
}

// Session binds a panel to one ticket view and executes panel commands.
type Session struct {
	cfg        SessionConfig
	panel      *Panel
	ticket     models.Ticket
	suggestion *models.Suggestion
	commands   map[string]func(ctx context.Context, args []string) error
}

func NewSession(cfg SessionConfig, ticket models.Ticket) *Session {
	s := &Session{
		cfg:    cfg,
		panel:  New(),
		ticket: ticket,
	}
	s.commands = map[string]func(context.Context, []string) error{
		"home":     s.cmdHome,
		"settings": s.cmdSettings,
		"toggle":   s.cmdToggle,
		"role":     s.cmdRole,
		"extra":    s.cmdExtra,
		"tag":      s.cmdTag,
		"space":    s.cmdSpace,
		"keep":     s.cmdKeep,
		"copy":     s.cmdCopy,
		"refresh":  s.cmdRefresh,
		"help":     s.cmdHelp,
		"?":        s.cmdHelp,
		"quit":     s.cmdQuit,
		"exit":     s.cmdQuit,
	}
	return s
}

// Commands lists the command words, for completion.
func (s *Session) Commands() []string {
	return []string{"home", "settings", "toggle", "role", "extra", "tag", "space", "keep", "copy", "refresh", "help", "quit"}
}

func (s *Session) Panel() *Panel {
	return s.panel
}

func (s *Session) Suggestion() *models.Suggestion {
	return s.suggestion
}

// Start composes the first suggestion, loads the stored table and renders.
func (s *Session) Start(ctx context.Context) error {
	if err := s.reloadDraft(ctx); err != nil {
		return err
	}
	if err := s.recompose(ctx); err != nil {
		return err
	}
	s.render()
	return nil
}

// Execute runs one command line. It returns io.EOF when the session ends.
func (s *Session) Execute(ctx context.Context, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	handler, ok := s.commands[strings.ToLower(parts[0])]
	if !ok {
		return domainErrors.ErrUnknownCommand.WithContext("value", parts[0])
	}

	logger.Debug(ctx, "panel command", "command", parts[0], "view", s.panel.View().String())
	return handler(ctx, parts[1:])
}

func (s *Session) cmdHome(ctx context.Context, _ []string) error {
	if err := s.flushDraft(ctx); err != nil {
		return err
	}
	s.panel.ShowHome()
	s.render()
	return nil
}

func (s *Session) cmdSettings(ctx context.Context, _ []string) error {
	if err := s.flushDraft(ctx); err != nil {
		return err
	}
	s.panel.ShowSettings()
	s.render()
	return nil
}

func (s *Session) cmdToggle(_ context.Context, _ []string) error {
	s.panel.Toggle()
	s.render()
	return nil
}

func (s *Session) cmdRole(ctx context.Context, args []string) error {
	if err := s.requireView(ViewHome); err != nil {
		return err
	}
	if len(args) != 1 {
		return domainErrors.ErrInvalidRole.WithContext("missing", "role <BD|FD|TL|SA>")
	}
	role, err := models.ParseRole(args[0])
	if err != nil {
		return domainErrors.ErrInvalidRole.WithError(err).WithContext("value", args[0])
	}

	on := !s.suggestion.Roles.Enabled(role)
	if _, err := s.cfg.Service.Preferences().SetRole(ctx, s.ticket.Key, role, on); err != nil {
		return err
	}
	return s.recomposeAndRender(ctx)
}

func (s *Session) cmdExtra(ctx context.Context, args []string) error {
	on, err := s.settingsToggle(args)
	if err != nil {
		return err
	}
	if err := s.cfg.Service.Preferences().SetExtraTagsEnabled(ctx, on); err != nil {
		return err
	}
	return s.recomposeAndRender(ctx)
}

func (s *Session) cmdSpace(ctx context.Context, args []string) error {
	on, err := s.settingsToggle(args)
	if err != nil {
		return err
	}
	if err := s.cfg.Service.Preferences().SetAddSpaceBetween(ctx, on); err != nil {
		return err
	}
	return s.recomposeAndRender(ctx)
}

func (s *Session) cmdKeep(ctx context.Context, args []string) error {
	on, err := s.settingsToggle(args)
	if err != nil {
		return err
	}
	if err := s.cfg.Service.Preferences().SetKeepOriginalTags(ctx, s.ticket.Key, on); err != nil {
		return err
	}
	return s.recomposeAndRender(ctx)
}

func (s *Session) cmdTag(_ context.Context, args []string) error {
	if err := s.requireView(ViewSettings); err != nil {
		return err
	}
	if !s.suggestion.ExtraEnabled {
		return domainErrors.ErrExtraTagsDisabled.WithSuggestion("Enable them first: extra on")
	}
	if len(args) < 2 || len(args) > 3 {
		return domainErrors.ErrInvalidTagPair.WithContext("missing", "tag <row> <branch|-> [pr]")
	}

	row, err := strconv.Atoi(args[0])
	if err != nil || row < 1 || row > models.MaxExtraTagPairs {
		return domainErrors.ErrInvalidRow.WithContext("value", args[0])
	}

	pair := models.ExtraTagPair{Branch: cell(args[1])}
	if len(args) == 3 {
		pair.PR = cell(args[2])
	}
	if err := s.panel.SetRow(row, pair); err != nil {
		return domainErrors.ErrInvalidRow.WithError(err)
	}
	s.render()
	return nil
}

func (s *Session) cmdCopy(_ context.Context, args []string) error {
	if err := s.requireView(ViewHome); err != nil {
		return err
	}
	lines := s.suggestion.Lines()
	if len(args) != 1 {
		return domainErrors.ErrInvalidSelection.WithContext("missing", fmt.Sprintf("copy <1-%d>", len(lines)))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(lines) {
		return domainErrors.ErrInvalidSelection.WithContext("value", args[0])
	}

	text := lines[n-1]
	if err := s.cfg.Clipboard.Copy(text); err != nil {
		return err
	}
	ui.PrintCopied(s.cfg.Out, s.cfg.Translations.GetMessage("panel_copied", 0, nil), text)
	return nil
}

// cmdRefresh re-reads the page, which may now show another ticket. Pending
// table edits are saved for the ticket they were made on.
func (s *Session) cmdRefresh(ctx context.Context, _ []string) error {
	if s.cfg.Source != nil {
		if err := s.flushDraft(ctx); err != nil {
			return err
		}

		var ticket *models.Ticket
		err := ui.WithSpinner(s.cfg.Out, s.cfg.Translations.GetMessage("waiting_for_page", 0, nil), func() error {
			var err error
			ticket, err = s.cfg.Service.Load(ctx, s.cfg.Source, s.cfg.Location)
			return err
		})
		if err != nil {
			return err
		}

		s.ticket = *ticket
		if err := s.reloadDraft(ctx); err != nil {
			return err
		}
	}
	return s.recomposeAndRender(ctx)
}

func (s *Session) cmdHelp(_ context.Context, _ []string) error {
	_, _ = fmt.Fprintln(s.cfg.Out, s.cfg.Translations.GetMessage("panel_help", 0, nil))
	return nil
}

func (s *Session) cmdQuit(ctx context.Context, _ []string) error {
	if err := s.flushDraft(ctx); err != nil {
		return err
	}
	return io.EOF
}

func (s *Session) requireView(v View) error {
	if !s.panel.Showing(v) {
		return domainErrors.ErrViewMismatch.WithContext("value", v.String())
	}
	return nil
}

func (s *Session) settingsToggle(args []string) (bool, error) {
	if err := s.requireView(ViewSettings); err != nil {
		return false, err
	}
	if len(args) != 1 {
		return false, domainErrors.ErrInvalidToggle.WithContext("missing", "on|off")
	}
	on, err := models.ParseToggle(args[0])
	if err != nil {
		return false, domainErrors.ErrInvalidToggle.WithError(err).WithContext("value", args[0])
	}
	return on, nil
}

// flushDraft saves pending table edits, as leaving a view does.
func (s *Session) flushDraft(ctx context.Context) error {
	if !s.panel.Dirty() {
		return nil
	}
	saved, err := s.cfg.Service.Preferences().SaveExtraTags(ctx, s.ticket.Project(), s.panel.Draft())
	if err != nil {
		return err
	}
	s.panel.LoadDraft(saved)
	logger.Info(ctx, "extra tags saved", "project", s.ticket.Project(), "pairs", len(saved))
	return s.recompose(ctx)
}

func (s *Session) reloadDraft(ctx context.Context) error {
	pairs, err := s.cfg.Service.Preferences().ExtraTags(ctx, s.ticket.Project())
	if err != nil {
		return err
	}
	s.panel.LoadDraft(pairs)
	return nil
}

func (s *Session) recompose(ctx context.Context) error {
	suggestion, err := s.cfg.Service.Suggest(ctx, s.ticket)
	if err != nil {
		return err
	}
	s.suggestion = suggestion
	return nil
}

func (s *Session) recomposeAndRender(ctx context.Context) error {
	if err := s.recompose(ctx); err != nil {
		return err
	}
	s.render()
	return nil
}

func (s *Session) render() {
	Render(s.cfg.Out, s.cfg.Translations, s.panel, s.suggestion)
}

func cell(v string) string {
	if v == emptyCell {
		return ""
	}
	return v
}
