package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dndml/internal/dice"
	"dndml/internal/sheet"
)

var (
	sheetTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	sectionStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	sectionNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	fieldNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	nullStyle        = lipgloss.NewStyle().Faint(true)
)

const nullText = "-"

// RenderSheet draws doc as a stat block, one bordered box per section.
// width <= 0 means no limit on field values.
func RenderSheet(doc *sheet.Document, width int) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(sheetTitleStyle.Render(doc.SourceName))
	b.WriteString("\n")
	for _, sec := range doc.Sections {
		b.WriteString(renderSection(sec, width))
		b.WriteString("\n")
	}
	return b.String()
}

func renderSection(sec sheet.Section, width int) string {
	nameWidth := 0
	for _, f := range sec.Fields {
		nameWidth = max(nameWidth, lipgloss.Width(f.Name))
	}

	lines := []string{sectionNameStyle.Render(sec.Name)}
	if len(sec.Fields) == 0 {
		lines = append(lines, nullStyle.Render("(empty)"))
	}
	for _, f := range sec.Fields {
		label := fieldNameStyle.Render(fmt.Sprintf("%-*s", nameWidth, f.Name))
		valueWidth := 0
		if width > 0 {
			// border, padding, label and separator
			valueWidth = max(width-nameWidth-6, 8)
		}
		valueLines := strings.Split(describeValue(f.Value), "\n")
		for i, vl := range valueLines {
			vl = truncate(vl, valueWidth)
			if i == 0 {
				lines = append(lines, label+"  "+vl)
			} else {
				lines = append(lines, strings.Repeat(" ", nameWidth)+"  "+vl)
			}
		}
	}
	return sectionStyle.Render(strings.Join(lines, "\n"))
}

func describeValue(v sheet.Value) string {
	switch val := v.(type) {
	case sheet.Stat:
		if val.Ability == nil {
			return nullText
		}
		mod := val.Mod
		if mod == nil {
			if m, err := dice.Modifier(*val.Ability); err == nil {
				mod = &m
			}
		}
		if mod == nil {
			return strconv.Itoa(*val.Ability)
		}
		return fmt.Sprintf("%d (%s)", *val.Ability, signed(*mod))
	case sheet.Str:
		return optString(val.Value)
	case sheet.Int:
		return optInt(val.Value)
	case sheet.Dice:
		return val.Notation()
	case sheet.DeathSaves:
		return fmt.Sprintf("success %s / fail %s", optInt(val.Succ), optInt(val.Fail))
	case sheet.Item:
		return describeItem(val)
	case sheet.ItemList:
		if len(val.Items) == 0 {
			return "(none)"
		}
		parts := make([]string, len(val.Items))
		for i, it := range val.Items {
			parts[i] = "• " + describeItem(it)
		}
		return strings.Join(parts, "\n")
	default:
		return nullText
	}
}

func describeItem(it sheet.Item) string {
	s := optString(it.Val) + " x" + optInt(it.Qty)
	if it.Weight != nil {
		s += fmt.Sprintf(" (%d lb)", *it.Weight)
	}
	return s
}

func signed(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func optInt(v *int) string {
	if v == nil {
		return nullText
	}
	return strconv.Itoa(*v)
}

func optString(v *string) string {
	if v == nil {
		return nullText
	}
	return *v
}
