package field

import "strings"

// Neighbors holds the section indexes to the left and right of a section on
// screen; -1 when there is none.
type Neighbors struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// SectionOrder is the on-screen order of date-part sections. Start and End
// are the leftmost and rightmost sections.
type SectionOrder struct {
	Neighbors map[int]Neighbors `json:"neighbors"`
	Start     int               `json:"start"`
	End       int               `json:"end"`
}

// sectionOrder links date-part sections left to right. Right to left, the
// sections are grouped by separators containing a space (except " / ") and
// the group order is reversed; sections inside a group keep reading order.
func sectionOrder(sections []Section, rtl bool) SectionOrder {
	parts := datePartIndices(sections)
	order := SectionOrder{Neighbors: make(map[int]Neighbors, len(parts)), Start: -1, End: -1}
	if len(parts) == 0 {
		return order
	}
	if !rtl {
		for i, idx := range parts {
			n := Neighbors{Left: -1, Right: -1}
			if i > 0 {
				n.Left = parts[i-1]
			}
			if i < len(parts)-1 {
				n.Right = parts[i+1]
			}
			order.Neighbors[idx] = n
		}
		order.Start, order.End = parts[0], parts[len(parts)-1]
		return order
	}

	// screen[k] is the k-th date part from the left.
	screen := make([]int, len(parts))
	pos := len(parts) - 1
	for start := 0; start < len(parts); {
		end := start
		for end < len(parts)-1 && !groupBreak(sections, parts[end]) {
			end++
		}
		for i := end; i >= start; i-- {
			screen[pos] = parts[i]
			pos--
		}
		start = end + 1
	}
	for k, idx := range screen {
		n := Neighbors{Left: -1, Right: -1}
		if k > 0 {
			n.Left = screen[k-1]
		}
		if k < len(screen)-1 {
			n.Right = screen[k+1]
		}
		order.Neighbors[idx] = n
	}
	order.Start, order.End = screen[0], screen[len(screen)-1]
	return order
}

func groupBreak(sections []Section, idx int) bool {
	if idx+1 >= len(sections) || sections[idx+1].Kind != Separator {
		return false
	}
	sep := stripIsolation(sections[idx+1].Text)
	return strings.Contains(sep, " ") && sep != " / "
}
