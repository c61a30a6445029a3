package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/gosuri/uitable"

	"github.com/lumina-journal/lumina/internal/client/models"
)

func (a *App) highlightCmd(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: highlight add|list|remove [...]")
		return
	}

	switch args[0] {
	case "add":
		a.highlightAdd()
	case "list":
		a.highlightList()
	case "remove":
		a.highlightRemove(args[1:])
	default:
		fmt.Println("Usage: highlight add|list|remove [...]")
	}
}

func (a *App) highlightAdd() {
	doc := a.store.Snapshot()
	fmt.Println("Types:")
	for _, c := range doc.HighlightCategories {
		fmt.Printf("  %s (%s)\n", c.Label, c.ID)
	}

	typ, err := getSimpleText(a.reader, "Type", os.Stdout)
	if err != nil {
		return
	}
	known := false
	for _, c := range doc.HighlightCategories {
		if c.ID == typ {
			known = true
			break
		}
	}
	if !known {
		fmt.Println("Unknown type:", typ)
		return
	}

	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil || title == "" {
		return
	}
	ratingStr, err := getSimpleText(a.reader, "Rating 1-5 (optional)", os.Stdout)
	if err != nil {
		return
	}
	rating := 0
	if ratingStr != "" {
		rating, err = strconv.Atoi(ratingStr)
		if err != nil || rating < 1 || rating > 5 {
			fmt.Println("Rating must be 1-5.")
			return
		}
	}
	notes, err := getSimpleText(a.reader, "Notes (optional)", os.Stdout)
	if err != nil {
		return
	}

	a.store.AddHighlight(models.Highlight{
		ID:     uuid.NewString(),
		Date:   models.Today(a.clk.Now()),
		Type:   typ,
		Title:  title,
		Rating: rating,
		Notes:  notes,
	})
	fmt.Println("Highlight added.")
}

func (a *App) highlightList() {
	doc := a.store.Snapshot()
	if len(doc.Highlights) == 0 {
		fmt.Println("No highlights yet.")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("DATE", "TYPE", "TITLE", "RATING", "ID")
	for _, h := range doc.Highlights {
		stars := ""
		if h.Rating > 0 {
			for i := 0; i < h.Rating; i++ {
				stars += "*"
			}
		}
		table.AddRow(h.Date, h.Type, h.Title, stars, h.ID)
	}
	fmt.Println(table)
}

func (a *App) highlightRemove(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: highlight remove <id>")
		return
	}
	a.store.RemoveHighlight(args[0])
	fmt.Println("Removed (if it existed).")
}
