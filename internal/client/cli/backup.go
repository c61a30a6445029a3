package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumina-journal/lumina/internal/common"
)

func (a *App) exportBackup(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	path := "lumina-backup.json"
	if len(args) > 0 {
		path = args[0]
	}

	doc := a.store.Snapshot()
	if err := a.docService.ExportToFile(path, doc, a.session.DisplayName); err != nil {
		fmt.Println("Export failed:", err)
		return
	}
	fmt.Println("Exported to", path)
}

func (a *App) importBackup(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: import <file>")
		return
	}

	raw, err := a.docService.ReadImportFile(args[0])
	if err != nil {
		fmt.Println("Import failed:", err)
		return
	}
	if err := a.store.Import(raw); err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Println("Invalid data format. Please provide a valid Lumina backup file.")
		} else {
			fmt.Println("Import failed:", err)
		}
		return
	}
	fmt.Println("Backup imported.")
}
