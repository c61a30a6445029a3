package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/lumina-journal/lumina/internal/client/connectivity"
)

// showStatus prints the persistent connection/save indicator.
func (a *App) showStatus() {
	switch a.monitor.CurrentStatus() {
	case connectivity.StatusOffline:
		color.Red("● Offline - retrying...")
	case connectivity.StatusUnstable:
		color.Yellow("● Unstable - last save failed, will retry on next change")
	default:
		if a.monitor.IsStable() {
			color.Green("● Connected")
		} else {
			color.Yellow("● Connecting... (stabilizing)")
		}
	}

	if !a.isLoggedIn() {
		fmt.Println("Not logged in.")
		return
	}
	if a.offline {
		fmt.Println("Working from the local cache; edits sync when the store is reachable.")
	}
	if a.coordinator.Dirty() {
		fmt.Println("Unsaved changes pending.")
	} else if t := a.coordinator.LastSaveTime(); !t.IsZero() {
		fmt.Println("Last saved at", t.Format("15:04:05"))
	}
}
