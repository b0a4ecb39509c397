// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package content holds the portfolio shown by the shell.
package content

import (
	"fmt"
	"strings"

	"github.com/jeranaias/termfolio/internal/util"
)

// Decorator styles headings and links. Plain output uses PlainDecorator.
type Decorator interface {
	Heading(s string) string
	Muted(s string) string
	Link(url, text string) string
}

// PlainDecorator leaves text unchanged.
type PlainDecorator struct{}

func (PlainDecorator) Heading(s string) string { return s }
func (PlainDecorator) Muted(s string) string { return s }
func (PlainDecorator) Link(_, text string) string { return text }

func span(start, end string) string {
	if end == "" {
		end = "present"
	}
	if start == "" {
		return end
	}
	return start + " - " + end
}

// FormatExperience renders positions, most recent first as stored.
func FormatExperience(records []Experience, d Decorator) string {
	if len(records) == 0 {
		return "No experience listed."
	}
	var sb strings.Builder
	for i, r := range records {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s @ %s\n", d.Heading(r.Role), r.Company)
		meta := span(r.Start, r.End)
		if r.Location != "" {
			meta += " | " + r.Location
		}
		sb.WriteString(d.Muted(meta))
		for _, h := range r.Highlights {
			sb.WriteString("\n  - " + h)
		}
	}
	return sb.String()
}

// FormatEducation renders degrees.
func FormatEducation(records []Education, d Decorator) string {
	if len(records) == 0 {
		return "No education listed."
	}
	var sb strings.Builder
	for i, r := range records {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%s, %s\n", d.Heading(r.Degree), r.School)
		sb.WriteString(d.Muted(span(r.Start, r.End)))
		if r.Notes != "" {
			sb.WriteString("\n  " + r.Notes)
		}
	}
	return sb.String()
}

// FormatSkills renders one line per category with aligned labels.
func FormatSkills(groups []SkillGroup, d Decorator) string {
	if len(groups) == 0 {
		return "No skills listed."
	}
	width := 0
	for _, g := range groups {
		if w := util.StringWidth(g.Category); w > width {
			width = w
		}
	}
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		label := d.Heading(g.Category) + strings.Repeat(" ", width-util.StringWidth(g.Category))
		lines = append(lines, label+"  "+strings.Join(g.Items, ", "))
	}
	return strings.Join(lines, "\n")
}

// FormatContact renders the email address and profile links.
func FormatContact(p Profile, d Decorator) string {
	width := util.StringWidth("email")
	for _, l := range p.Links {
		if w := util.StringWidth(l.Label); w > width {
			width = w
		}
	}
	row := func(label, url, text string) string {
		return util.PadRight(label, width) + "  " + d.Link(url, text)
	}

	lines := []string{row("email", "mailto:"+p.Email, p.Email)}
	for _, l := range p.Links {
		lines = append(lines, row(l.Label, l.URL, l.URL))
	}
	return strings.Join(lines, "\n")
}
