package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosuri/uitable"

	"github.com/lumina-journal/lumina/internal/client/models"
)

// resolveDate parses an optional YYYY-MM-DD argument, defaulting to today.
func (a *App) resolveDate(args []string) (models.DateKey, error) {
	if len(args) == 0 {
		return models.Today(a.clk.Now()), nil
	}
	if _, err := time.Parse(models.DateFormat, args[0]); err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
	}
	return args[0], nil
}

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return false
	}
	return true
}

func (a *App) showDay(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	date, err := a.resolveDate(args)
	if err != nil {
		fmt.Println(err)
		return
	}

	doc := a.store.Snapshot()
	log := doc.Log(date)
	if log == nil {
		fmt.Println("Nothing recorded for", date)
		return
	}

	fmt.Println(date)
	if len(log.Moods) > 0 {
		fmt.Println("Mood:", describeMood(doc, log.Moods[0]))
	}
	if log.Weight > 0 {
		fmt.Printf("Weight: %.1f\n", log.Weight)
	}

	if len(log.Tasks) > 0 {
		table := uitable.New()
		table.AddRow("", "TASK", "TIME", "PRIORITY")
		for _, t := range log.Tasks {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}
			table.AddRow(mark, t.Title, t.Time, string(t.Priority))
		}
		fmt.Println(table)
	}

	if len(log.Expenses) > 0 {
		table := uitable.New()
		table.AddRow("AMOUNT", "CATEGORY", "DESCRIPTION")
		var total float64
		for _, e := range log.Expenses {
			table.AddRow(fmt.Sprintf("%.2f", e.Amount), e.Category, e.Description)
			total += e.Amount
		}
		table.AddRow(fmt.Sprintf("%.2f", total), "", "total")
		fmt.Println(table)
	}

	for _, j := range log.JournalEntries {
		fmt.Printf("%s  %s\n", j.Timestamp, j.Text)
	}
}

func describeMood(doc *models.UserDocument, moodID string) string {
	for _, m := range doc.Moods {
		if m.ID == moodID {
			return m.Emoji + " " + m.Label
		}
	}
	return moodID
}

// tagHour assigns one or more categories to an hour of today:
// hour 14 work,social
func (a *App) tagHour(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) < 2 {
		fmt.Println("Usage: hour <0-23> <category,...>")
		return
	}
	hour, err := strconv.Atoi(args[0])
	if err != nil || hour < 0 || hour > 23 {
		fmt.Println("Hour must be between 0 and 23.")
		return
	}

	cats := strings.Split(args[1], ",")
	doc := a.store.Snapshot()
	for _, c := range cats {
		if !hasCategory(doc.Categories, c) {
			fmt.Println("Unknown category:", c)
			return
		}
	}

	today := models.Today(a.clk.Now())
	a.store.MutateLog(today, func(l *models.DayLog) {
		l.Hours[hour] = cats
	})
	fmt.Printf("Tagged %02d:00 with %s\n", hour, args[1])
}

func hasCategory(cats []models.Category, id string) bool {
	for _, c := range cats {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (a *App) setMood(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) == 0 {
		doc := a.store.Snapshot()
		for _, m := range doc.Moods {
			fmt.Printf("  %s %s (%s)\n", m.Emoji, m.Label, m.ID)
		}
		return
	}

	doc := a.store.Snapshot()
	found := false
	for _, m := range doc.Moods {
		if m.ID == args[0] {
			found = true
			break
		}
	}
	if !found {
		fmt.Println("Unknown mood:", args[0])
		return
	}

	today := models.Today(a.clk.Now())
	a.store.MutateLog(today, func(l *models.DayLog) {
		// First element is the primary mood.
		l.Moods = append([]string{args[0]}, l.Moods...)
	})
	fmt.Println("Mood recorded.")
}

func (a *App) addExpense(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) < 2 {
		fmt.Println("Usage: expense <amount> <category> [description]")
		return
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil || amount < 0 {
		fmt.Println("Amount must be a non-negative number.")
		return
	}

	e := models.Expense{
		ID:          uuid.NewString(),
		Amount:      amount,
		Category:    args[1],
		Description: strings.Join(args[2:], " "),
	}
	today := models.Today(a.clk.Now())
	a.store.MutateLog(today, func(l *models.DayLog) {
		l.Expenses = append(l.Expenses, e)
	})
	fmt.Printf("Expense of %.2f recorded.\n", amount)
}

func (a *App) addJournalEntry(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	text, err := getMultiline(a.reader, "Journal entry", os.Stdout)
	if err != nil || text == "" {
		return
	}

	entry := models.JournalEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: a.clk.Now().Format("15:04"),
	}
	today := models.Today(a.clk.Now())
	a.store.MutateLog(today, func(l *models.DayLog) {
		l.JournalEntries = append(l.JournalEntries, entry)
	})
	fmt.Println("Journal entry added.")
}

func (a *App) setWeight(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: weight <kg>")
		return
	}
	w, err := strconv.ParseFloat(args[0], 64)
	if err != nil || w <= 0 {
		fmt.Println("Weight must be a positive number.")
		return
	}
	today := models.Today(a.clk.Now())
	a.store.MutateLog(today, func(l *models.DayLog) {
		l.Weight = w
	})
	fmt.Println("Weight recorded.")
}
