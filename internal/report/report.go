// Package report renders a merged configuration as a styled terminal
// summary using lipgloss.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/keymerge/internal/collide"
	"github.com/dshills/keymerge/internal/merge"
	"github.com/dshills/keymerge/internal/tables"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	severityStyles = map[collide.Severity]lipgloss.Style{
		collide.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		collide.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		collide.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	}
)

// Render produces the full summary with the built-in lookup tables.
func Render(cfg *merge.MergedConfig) string {
	return RenderWith(cfg, nil)
}

// RenderWith produces the full summary: totals, per-tool counts, action
// category breakdown, the conflict report, and suggestions. Output order
// is deterministic. A nil tables argument uses the built-in defaults.
func RenderWith(cfg *merge.MergedConfig, t *tables.Tables) string {
	if t == nil {
		t = tables.Default()
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render("Merged keybinds"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "  %d total, %s enabled, %s disabled\n",
		cfg.Stats.TotalKeybinds,
		okStyle.Render(fmt.Sprintf("%d", cfg.Stats.EnabledCount)),
		subtleStyle.Render(fmt.Sprintf("%d", cfg.Stats.DisabledCount)))

	for _, tool := range sortedTools(cfg) {
		tr := cfg.Tools[tool]
		fmt.Fprintf(&b, "  %s: %d keybinds, %d conflicts, %d suggestions\n",
			titleStyle.Render(tool),
			cfg.Stats.ByTool[tool], len(tr.Conflicts), len(tr.Suggestions))
	}

	b.WriteString(renderCategories(cfg, t))
	b.WriteString(renderConflicts(cfg))
	b.WriteString(renderSuggestions(cfg))
	b.WriteString(renderVerdict(cfg))
	return b.String()
}

// renderCategories counts enabled keybinds per action category.
func renderCategories(cfg *merge.MergedConfig, t *tables.Tables) string {
	counts := make(map[string]int)
	for _, kb := range cfg.Keybinds {
		if kb.Disabled {
			continue
		}
		if c, ok := t.CategoryFor(kb.Action); ok {
			counts[c.Label]++
		}
	}
	if len(counts) == 0 {
		return ""
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Categories"))
	b.WriteByte('\n')
	for _, label := range labels {
		fmt.Fprintf(&b, "  %s: %d\n", label, counts[label])
	}
	return b.String()
}

func renderConflicts(cfg *merge.MergedConfig) string {
	total := len(cfg.Conflicts.Global) + len(cfg.Conflicts.Contextual) + len(cfg.Conflicts.Resolved)
	if total == 0 {
		return okStyle.Render("No conflicts detected") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Conflicts"))
	b.WriteByte('\n')

	writeGroup := func(label string, conflicts []collide.Conflict) {
		if len(conflicts) == 0 {
			return
		}
		fmt.Fprintf(&b, "  %s\n", subtleStyle.Render(label))
		for _, c := range conflicts {
			b.WriteString("    ")
			b.WriteString(FormatConflict(c))
			b.WriteByte('\n')
		}
	}
	writeGroup("global", cfg.Conflicts.Global)
	writeGroup("contextual", cfg.Conflicts.Contextual)
	writeGroup("resolved", cfg.Conflicts.Resolved)
	return b.String()
}

func renderSuggestions(cfg *merge.MergedConfig) string {
	var b strings.Builder
	for _, tool := range sortedTools(cfg) {
		for _, s := range cfg.Tools[tool].Suggestions {
			if b.Len() == 0 {
				b.WriteString(titleStyle.Render("Suggestions"))
				b.WriteByte('\n')
			}
			alt := subtleStyle.Render("(no free alternative found)")
			if len(s.Alternatives) > 0 {
				alt = "try " + keyStyle.Render(strings.Join(s.Alternatives, ", "))
			}
			fmt.Fprintf(&b, "  %s %s: %s; %s %s\n",
				titleStyle.Render(tool),
				keyStyle.Render(s.CurrentKey), s.Reason, alt,
				subtleStyle.Render(fmt.Sprintf("(confidence %.2f)", s.Confidence)))
		}
	}
	return b.String()
}

func renderVerdict(cfg *merge.MergedConfig) string {
	if cfg.Validation.Valid {
		return okStyle.Render("Valid: no unresolved errors") + "\n"
	}
	return severityStyles[collide.SeverityError].Render(
		fmt.Sprintf("Invalid: %d unresolved errors", len(cfg.Validation.Errors))) + "\n"
}

// FormatConflict renders one conflict line with its severity colored.
func FormatConflict(c collide.Conflict) string {
	style, ok := severityStyles[c.Severity]
	if !ok {
		style = subtleStyle
	}
	return fmt.Sprintf("%s %s %s %s",
		style.Render(fmt.Sprintf("[%s]", c.Severity)),
		keyStyle.Render(c.CanonicalKey),
		subtleStyle.Render(fmt.Sprintf("(%s)", strings.Join(c.Tools, ", "))),
		c.Message)
}

// RenderValidation renders the pass/fail view used by the validate
// command.
func RenderValidation(vr merge.ValidationResult) string {
	var b strings.Builder
	writeGroup := func(conflicts []collide.Conflict) {
		for _, c := range conflicts {
			b.WriteString("  ")
			b.WriteString(FormatConflict(c))
			b.WriteByte('\n')
		}
	}
	writeGroup(vr.Errors)
	writeGroup(vr.Warnings)
	writeGroup(vr.Info)

	if vr.Valid {
		b.WriteString(okStyle.Render(fmt.Sprintf("OK: %d warnings, %d info", len(vr.Warnings), len(vr.Info))))
	} else {
		b.WriteString(severityStyles[collide.SeverityError].Render(
			fmt.Sprintf("FAIL: %d errors", len(vr.Errors))))
	}
	b.WriteByte('\n')
	return b.String()
}

func sortedTools(cfg *merge.MergedConfig) []string {
	tools := make([]string, 0, len(cfg.Tools))
	for name := range cfg.Tools {
		tools = append(tools, name)
	}
	sort.Strings(tools)
	return tools
}
