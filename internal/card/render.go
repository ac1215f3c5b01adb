// internal/card/render.go
package card

import (
	"fmt"
	"io"
	"time"

	"github.com/hako/durafmt"
	"github.com/olekukonko/tablewriter"
)

const skeletonCell = "░░░░░░░░"

var statusDots = map[string]string{
	"#43b581": "●",
	"#faa61a": "◐",
	"#f04747": "⊖",
	"#747f8d": "○",
}

// Render writes the card as a terminal table. BranchHidden writes nothing.
func Render(w io.Writer, v View) error {
	switch v.Branch {
	case BranchHidden:
		return nil
	case BranchSkeleton:
		table := newTable(w)
		table.Append([]string{skeletonCell, skeletonCell + skeletonCell})
		table.Append([]string{skeletonCell, skeletonCell})
		table.Render()
		return nil
	}

	table := newTable(w)
	table.SetHeader([]string{statusDots[v.StatusColor] + " " + v.DisplayName, v.Heading})
	table.Append([]string{v.Handle, v.Title})
	if v.Subtitle != "" {
		table.Append([]string{"", v.Subtitle})
	}
	table.SetFooter([]string{v.AvatarURL, v.Background})
	table.Render()
	return nil
}

// RenderAge writes a one-line freshness note under the card.
func RenderAge(w io.Writer, cached bool, age time.Duration) error {
	source := "fresh"
	if cached {
		source = "cached"
	}
	_, err := fmt.Fprintf(w, "%s, %s old\n", source, durafmt.Parse(age.Truncate(time.Second)).LimitFirstN(2).String())
	return err
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(true)
	return table
}
