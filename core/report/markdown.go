package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/hpmalabs/hpma/schema"
)

// mdWriter builds markdown line by line.
type mdWriter struct {
	lines []string
}

func (w *mdWriter) line(format string, args ...any) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func (w *mdWriter) blank() {
	w.lines = append(w.lines, "")
}

// list writes an optional bold title followed by bullets. Nothing is written for an empty list.
func (w *mdWriter) list(title string, items []string, spaced bool) {
	if len(items) == 0 {
		return
	}
	if spaced {
		w.blank()
	}
	if title != "" {
		w.line("**%s:**", title)
	}
	for _, item := range items {
		w.line("- %s", item)
	}
}

func (w *mdWriter) quotes(notes []string) {
	if len(notes) == 0 {
		return
	}
	w.blank()
	for _, n := range notes {
		w.line("> %s", n)
	}
}

func (w *mdWriter) matches(title string, items []schema.CompatibilityMatch, spaced bool) {
	if len(items) == 0 {
		return
	}
	if spaced {
		w.blank()
	}
	w.line("**%s:**", title)
	for _, m := range items {
		if m.Why == "" {
			w.line("- **%s**", m.Match)
			continue
		}
		w.line("- **%s**: %s", m.Match, m.Why)
	}
}

// RenderMarkdown renders a report as markdown. Sections without content are omitted.
func RenderMarkdown(r *schema.Report) string {
	w := &mdWriter{}

	w.line("# %s", r.IdentityName)
	if r.IdentityTagline != "" {
		w.line("*%s*", r.IdentityTagline)
	}
	w.blank()
	w.line("**%s**", r.SummaryLabel)
	if r.ModeRatio != "" {
		w.line("Voice Balance: %s", r.ModeRatio)
	}
	w.blank()

	if !r.Roles.Empty() {
		w.line("## Your Voices")
		for _, role := range []*schema.ReportRole{r.Roles.Anchor, r.Roles.Keystone, r.Roles.Lens, r.Roles.Shadow} {
			if role != nil {
				w.line("- **%s**: %s", role.Name, role.Archetype)
			}
		}
		for _, v := range r.Roles.Voices {
			w.line("- **%s**: %s", v.Name, v.Archetype)
		}
		w.blank()
	}

	d := r.Domains

	if s := d.Strengths; len(s.Bullets) > 0 || len(s.Notes) > 0 {
		w.line("## Strengths")
		w.list("", s.Bullets, false)
		w.quotes(s.Notes)
		w.blank()
	}

	if s := d.Watchouts; len(s.Bullets) > 0 || len(s.Notes) > 0 {
		w.line("## Watch For")
		w.list("", s.Bullets, false)
		if len(s.Telltales) > 0 {
			w.blank()
			w.line("**Telltale Signs:**")
			for _, t := range s.Telltales {
				w.line("- *%s*", t)
			}
		}
		w.quotes(s.Notes)
		w.blank()
	}

	if c := d.Career; len(c.BestEnvironments) > 0 || len(c.RolePatterns) > 0 || len(c.Notes) > 0 {
		w.line("## Career")
		w.list("Best Environments", c.BestEnvironments, false)
		w.list("Role Patterns", c.RolePatterns, len(c.BestEnvironments) > 0)
		w.list("Avoid", c.AntiPatterns, true)
		w.list("Collaboration", c.Collaboration, true)
		w.quotes(c.Notes)
		w.blank()
	}

	if m := d.Money; len(m.Style) > 0 || len(m.Notes) > 0 {
		w.line("## Money")
		w.list("Style", m.Style, false)
		w.list("Risks", m.Risks, len(m.Style) > 0)
		w.list("Guardrails", m.Guardrails, true)
		w.quotes(m.Notes)
		w.blank()
	}

	if rel := d.Relationships; len(rel.Offers) > 0 || len(rel.Needs) > 0 || len(rel.Notes) > 0 {
		w.line("## Relationships")
		w.list("You Offer", rel.Offers, false)
		w.list("You Need", rel.Needs, len(rel.Offers) > 0)
		w.list("Triggers", rel.Triggers, true)
		w.list("Repair", rel.Repair, true)
		w.quotes(rel.Notes)
		w.blank()
	}

	if p := d.Parenting; len(p.Strengths) > 0 || len(p.DoMore) > 0 || len(p.Notes) > 0 {
		w.line("## Parenting")
		w.list("Strengths", p.Strengths, false)
		w.list("Traps", p.Traps, len(p.Strengths) > 0)
		w.list("Do More", p.DoMore, true)
		w.list("Do Less", p.DoLess, true)
		w.quotes(p.Notes)
		w.blank()
	}

	if h := d.Hobbies; len(h.Recharge) > 0 || len(h.Play) > 0 || len(h.Notes) > 0 {
		w.line("## Hobbies")
		w.list("Recharge", h.Recharge, false)
		w.list("Play", h.Play, len(h.Recharge) > 0)
		w.list("Warning Signs", h.WarningSigns, true)
		w.quotes(h.Notes)
		w.blank()
	}

	if s := d.SelfImprovement; len(s.Leverage) > 0 || len(s.IfThenRules) > 0 || len(s.Notes) > 0 {
		w.line("## Self-Improvement")
		w.list("Leverage Points", s.Leverage, false)
		w.list("Keystone Constraints", s.KeystoneConstraints, len(s.Leverage) > 0)
		w.list("If-Then Rules", s.IfThenRules, len(s.Leverage) > 0 || len(s.KeystoneConstraints) > 0)
		w.list("Growth Edges", s.GrowthEdges, true)
		w.quotes(s.Notes)
		w.blank()
	}

	if c := d.Compatibility; len(c.Complimentary) > 0 || len(c.Friction) > 0 || len(c.GeneralNotes) > 0 {
		w.line("## Compatibility")
		w.matches("Complementary Matches", c.Complimentary, false)
		w.matches("Friction Points", c.Friction, len(c.Complimentary) > 0)
		w.matches("Potential Conflicts", c.Conflict, true)
		w.quotes(c.GeneralNotes)
		w.blank()
	}

	if v := d.Validity; v != nil && len(v.Notes) > 0 {
		w.line("## Response Validity")
		w.list("", v.Notes, false)
		w.blank()
	}

	w.line("---")
	w.blank()
	w.line("*Glass-Box Trace*")
	flags := strings.Join(r.Trace.Flags, ", ")
	if flags == "" {
		flags = "none"
	}
	w.line("Flags: %s", flags)
	w.line("Rules Matched: %d", len(r.Trace.MatchedRules))

	return strings.Join(w.lines, "\n")
}

// RenderHTML renders a report as a complete HTML page.
func RenderHTML(r *schema.Report) []byte {
	title := r.IdentityName
	if r.Respondent != "" {
		title = fmt.Sprintf("%s (%s)", r.IdentityName, r.Respondent)
	}
	return MarkdownToHTML(RenderMarkdown(r), title)
}

// MarkdownToHTML converts rendered markdown into a complete HTML page.
func MarkdownToHTML(md, title string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: title,
	})
	return markdown.Render(doc, renderer)
}
