package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders v in its bracketed notation, as the tree view shows it.
// The result parses back to an equal value.
func FormatValue(v Value) string {
	switch v := v.(type) {
	case Stat:
		return fmt.Sprintf("%%stat[ability: %s; mod: %s]", formatInt(v.Ability), formatInt(v.Mod))
	case Str:
		return "%string[" + formatStr(v.Value) + "]"
	case Int:
		return "%int[" + formatInt(v.Value) + "]"
	case Dice:
		return "%dice[" + formatDice(v) + "]"
	case DeathSaves:
		return fmt.Sprintf("%%deathsaves[succ: %s; fail: %s]", formatInt(v.Succ), formatInt(v.Fail))
	case Item:
		return formatItem(v)
	case ItemList:
		if len(v.Items) == 0 {
			return "%itemlist[]"
		}
		parts := make([]string, 0, len(v.Items))
		for _, it := range v.Items {
			parts = append(parts, formatItem(it)+";")
		}
		return "%itemlist[" + strings.Join(parts, " ") + "]"
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("<%T>", v)
}

// Notation renders a dice value as "NdF+M", leaving out a zero or NULL modifier.
func (d Dice) Notation() string {
	var b strings.Builder
	b.WriteString(formatInt(d.Count))
	b.WriteByte('d')
	b.WriteString(formatInt(d.Faces))
	if d.Modifier != nil && *d.Modifier != 0 {
		b.WriteByte('+')
		b.WriteString(strconv.Itoa(*d.Modifier))
	}
	return b.String()
}

func formatDice(d Dice) string {
	// NULL glued to 'd' would lex as one identifier.
	if d.Count == nil || d.Faces == nil {
		return fmt.Sprintf("%s d %s + %s", formatInt(d.Count), formatInt(d.Faces), formatInt(d.Modifier))
	}
	return fmt.Sprintf("%dd%d+%s", *d.Count, *d.Faces, formatInt(d.Modifier))
}

func formatItem(it Item) string {
	return fmt.Sprintf("%%item[val: %s; qty: %s; weight: %s]", formatStr(it.Val), formatInt(it.Qty), formatInt(it.Weight))
}

func formatInt(v *int) string {
	if v == nil {
		return "NULL"
	}
	return strconv.Itoa(*v)
}

func formatStr(v *string) string {
	if v == nil {
		return "NULL"
	}
	return `"` + *v + `"`
}
