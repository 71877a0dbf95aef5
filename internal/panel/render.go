package panel

import (
	"fmt"
	"io"
	"strings"

	"github.com/thomas-vilte/branchmate/internal/i18n"
	"github.com/thomas-vilte/branchmate/internal/models"
	"github.com/thomas-vilte/branchmate/internal/ui"
)

// Render writes the visible part of the panel.
func Render(w io.Writer, t *i18n.Translations, p *Panel, s *models.Suggestion) {
	if p.Collapsed() {
		ui.PrintInfo(w, t.GetMessage("panel_collapsed", 0, map[string]interface{}{"Key": s.Ticket.Key}))
		return
	}

	switch p.View() {
	case ViewHome:
		renderHome(w, t, s)
	case ViewSettings:
		renderSettings(w, t, p, s)
	}
}

func renderHome(w io.Writer, t *i18n.Translations, s *models.Suggestion) {
	ui.PrintSectionBanner(w, fmt.Sprintf("%s · %s", s.Ticket.Key, t.GetMessage("panel_home_title", 0, nil)))

	boxes := make([]string, 0, len(models.PanelRoleOrder))
	for _, r := range models.PanelRoleOrder {
		boxes = append(boxes, fmt.Sprintf("%s %s (%s)", ui.Checkbox(s.Roles.Enabled(r)), r.Label(), r))
	}
	_, _ = fmt.Fprintf(w, "%s\n  %s\n\n", ui.Dim.Sprint(t.GetMessage("panel_roles_label", 0, nil)), strings.Join(boxes, "  "))

	_, _ = fmt.Fprintf(w, "%s\n", ui.Dim.Sprint(t.GetMessage("panel_generated_label", 0, nil)))
	for i, line := range s.Lines() {
		_, _ = fmt.Fprintf(w, "  %s %s\n", ui.Info.Sprintf("%2d.", i+1), line)
	}
}

func renderSettings(w io.Writer, t *i18n.Translations, p *Panel, s *models.Suggestion) {
	ui.PrintSectionBanner(w, fmt.Sprintf("%s · %s", s.Ticket.Key, t.GetMessage("panel_settings_title", 0, nil)))

	_, _ = fmt.Fprintf(w, "%s %s\n", ui.Checkbox(s.ExtraEnabled), t.GetMessage("panel_extra_tags_label", 0, nil))

	header := fmt.Sprintf("  %-3s %-20s %s", "#",
		t.GetMessage("panel_table_branch_header", 0, nil),
		t.GetMessage("panel_table_pr_header", 0, nil))
	_, _ = fmt.Fprintln(w, ui.Dim.Sprint(header))
	for i, row := range p.Draft() {
		line := fmt.Sprintf("  %-3d %-20s %s", i+1, row.Branch, row.PR)
		if !s.ExtraEnabled {
			line = ui.Dim.Sprint(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}
	if !s.ExtraEnabled {
		_, _ = fmt.Fprintf(w, "  %s\n", ui.Dim.Sprint(t.GetMessage("panel_table_readonly", 0, nil)))
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", ui.Checkbox(s.Options.AddSpaceBetween), t.GetMessage("panel_add_space_label", 0, nil))
	_, _ = fmt.Fprintf(w, "%s %s\n", ui.Checkbox(s.Options.KeepOriginalTags), t.GetMessage("panel_keep_tags_label", 0, nil))
}
