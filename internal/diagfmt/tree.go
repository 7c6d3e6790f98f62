package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// treeBlock is a rendered subtree. Every line is padded to width display
// columns; root is the column of the subtree's connector.
type treeBlock struct {
	lines []string
	width int
	root  int
}

const treeSpacing = 3

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// renderTree lays the node out top-down with its children side by side.
func renderTree(node *treeNode) treeBlock {
	labelWidth := runewidth.StringWidth(node.label)
	if len(node.children) == 0 {
		return treeBlock{lines: []string{node.label}, width: labelWidth, root: labelWidth / 2}
	}

	blocks := make([]treeBlock, len(node.children))
	offsets := make([]int, len(node.children))
	height := 0
	childrenWidth := 0
	for i, child := range node.children {
		blocks[i] = renderTree(child)
		height = max(height, len(blocks[i].lines))
		if i > 0 {
			childrenWidth += treeSpacing
		}
		offsets[i] = childrenWidth
		childrenWidth += blocks[i].width
	}

	first := offsets[0] + blocks[0].root
	last := offsets[len(blocks)-1] + blocks[len(blocks)-1].root
	center := (first + last) / 2

	// Shift whichever side is narrower so the label sits over the children's center.
	labelShift, childShift := center-labelWidth/2, 0
	if labelShift < 0 {
		childShift, labelShift = -labelShift, 0
	}
	rootPos := labelShift + labelWidth/2
	width := max(labelShift+labelWidth, childShift+childrenWidth, rootPos+1)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for i, b := range blocks {
		pos := childShift + offsets[i] + b.root
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}

	lines := make([]string, 0, height+2)
	lines = append(lines,
		padRight(strings.Repeat(" ", labelShift)+node.label, width),
		string(connector),
	)
	for row := range height {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childShift))
		for i, b := range blocks {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", treeSpacing))
			}
			line := ""
			if row < len(b.lines) {
				line = b.lines[row]
			}
			sb.WriteString(padRight(line, b.width))
		}
		lines = append(lines, padRight(sb.String(), width))
	}

	return treeBlock{lines: lines, width: width, root: rootPos}
}

func (b treeBlock) String() string {
	var sb strings.Builder
	for _, line := range b.lines {
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
