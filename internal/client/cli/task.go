package cli

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/lumina-journal/lumina/internal/client/models"
)

var timeOfDay = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

func (a *App) taskCmd(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: task add|done|list [...]")
		return
	}

	switch args[0] {
	case "add":
		a.taskAdd(args[1:])
	case "done":
		a.taskDone(args[1:])
	case "list":
		a.showDay(ctx, nil)
	default:
		fmt.Println("Usage: task add|done|list [...]")
	}
}

// taskAdd creates a task on today's log:
//
//	task add Buy groceries
//	task add @09:00 !high Dentist appointment
//
// @HH:MM schedules the task (scheduled tasks never roll over); !low/!medium/
// !high sets the priority.
func (a *App) taskAdd(args []string) {
	t := models.Task{ID: uuid.NewString()}

	var words []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "@"):
			at := strings.TrimPrefix(arg, "@")
			if !timeOfDay.MatchString(at) {
				fmt.Println("Time must be HH:MM.")
				return
			}
			t.Time = at
		case arg == "!low":
			t.Priority = models.PriorityLow
		case arg == "!medium":
			t.Priority = models.PriorityMedium
		case arg == "!high":
			t.Priority = models.PriorityHigh
		default:
			words = append(words, arg)
		}
	}
	t.Title = strings.Join(words, " ")
	if t.Title == "" {
		fmt.Println("Usage: task add [@HH:MM] [!low|!medium|!high] <title>")
		return
	}

	today := models.Today(a.clk.Now())
	a.store.MutateLog(today, func(l *models.DayLog) {
		l.Tasks = append(l.Tasks, t)
	})
	fmt.Println("Task added.")
}

// taskDone toggles completion by matching the title prefix.
func (a *App) taskDone(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: task done <title prefix>")
		return
	}
	prefix := strings.ToLower(strings.Join(args, " "))
	today := models.Today(a.clk.Now())

	completed := ""
	a.store.MutateLog(today, func(l *models.DayLog) {
		for i := range l.Tasks {
			if strings.HasPrefix(strings.ToLower(l.Tasks[i].Title), prefix) {
				l.Tasks[i].Completed = !l.Tasks[i].Completed
				completed = l.Tasks[i].Title
				return
			}
		}
	})
	if completed == "" {
		fmt.Println("No task matches", prefix)
		return
	}
	fmt.Println("Toggled:", completed)
}
