package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cgardner/epicsync/internal/gh"
	"github.com/cgardner/epicsync/internal/model"
)

// RenderBody produces the canonical remote issue body for an epic: a goal
// section, a task checklist, and the journey timeline.
//
// The output is a pure function of (goal, ordered sub-items, ordered
// journey log), so re-rendering unchanged state matches the previous
// remote body byte for byte and a no-op flush never shows as an edit.
func RenderBody(epic *model.Epic) string {
	if epic.IsExternal() {
		return renderBodyWithChecklist(epic, epic.ExternalChecklist)
	}

	var lines []string
	for _, item := range epic.SubItems {
		box := " "
		if item.State == "closed" {
			box = "x"
		}
		lines = append(lines, fmt.Sprintf("- [%s] #%d %s", box, item.Number, item.Title))
	}
	return renderBodyWithChecklist(epic, strings.Join(lines, "\n"))
}

// renderBodyWithChecklist assembles the body sections around an
// already-rendered checklist.
func renderBodyWithChecklist(epic *model.Epic, checklist string) string {
	var sb strings.Builder

	sb.WriteString("## Goal\n\n")
	sb.WriteString(strings.TrimSpace(epic.Goal))
	sb.WriteString("\n\n## Tasks\n\n")
	if checklist == "" {
		sb.WriteString("_No tasks yet._")
	} else {
		sb.WriteString(checklist)
	}

	sb.WriteString("\n\n## Journey\n\n")
	for _, entry := range epic.Journey {
		sb.WriteString(entry.Line())
		sb.WriteString("\n")
	}

	return sb.String()
}

// checklistLine matches one rendered external checklist line:
// "- [ ] [Title](url)" or "- [x] [Title](url)".
var checklistLine = regexp.MustCompile(`^- \[([ x])\] \[(.*)\]\((.*)\)$`)

// RenderExternalChecklist renders the checklist section for an external
// epic from the foreign repository's currently-open items. Items from the
// previous checklist that no longer appear open are carried forward as
// checked lines rather than removed, so completed work stays visible.
func RenderExternalChecklist(open []*gh.Issue, previous string) string {
	seen := make(map[string]bool, len(open))
	var lines []string
	for _, issue := range open {
		seen[issue.URL] = true
		lines = append(lines, fmt.Sprintf("- [ ] [%s](%s)", issue.Title, issue.URL))
	}

	for _, prev := range strings.Split(previous, "\n") {
		m := checklistLine.FindStringSubmatch(strings.TrimRight(prev, "\r"))
		if m == nil {
			continue
		}
		title, url := m[2], m[3]
		if seen[url] {
			continue
		}
		seen[url] = true
		lines = append(lines, fmt.Sprintf("- [x] [%s](%s)", title, url))
	}

	return strings.Join(lines, "\n")
}
