package models

import "time"

// DateFormat is the calendar-date layout used for log keys.
const DateFormat = "2006-01-02"

// Today returns the local calendar date key for now.
func Today(now time.Time) DateKey {
	return now.Format(DateFormat)
}

// Normalize back-fills a document fetched from the store so every consumer
// can rely on the structure being complete: nil or empty collections are
// replaced with defaults, every log's Date is forced to match its key, and
// icon/color identifiers outside the supported sets fall back to defaults.
func (d *UserDocument) Normalize() {
	if d.Logs == nil {
		d.Logs = map[DateKey]*DayLog{}
	}
	if d.Highlights == nil {
		d.Highlights = []Highlight{}
	}
	if len(d.Categories) == 0 {
		d.Categories = DefaultCategories()
	}
	if len(d.ExpenditureCategories) == 0 {
		d.ExpenditureCategories = DefaultExpenditureCategories()
	}
	if len(d.HighlightCategories) == 0 {
		d.HighlightCategories = DefaultHighlightCategories()
	}
	if len(d.Moods) == 0 {
		d.Moods = DefaultMoods()
	}
	if d.Preferences == nil {
		d.Preferences = &Preferences{}
	}
	if d.Preferences.CustomTheme == nil {
		d.Preferences.CustomTheme = DefaultTheme()
	}

	for date, l := range d.Logs {
		if l == nil {
			d.Logs[date] = NewDayLog(date)
			continue
		}
		l.Date = date
		if l.Hours == nil {
			l.Hours = map[int][]CategoryID{}
		}
		if l.Expenses == nil {
			l.Expenses = []Expense{}
		}
		if l.Moods == nil {
			l.Moods = []string{}
		}
		if l.JournalEntries == nil {
			l.JournalEntries = []JournalEntry{}
		}
		if l.Tasks == nil {
			l.Tasks = []Task{}
		}
	}

	normalizeCategories(d.Categories)
	normalizeCategories(d.ExpenditureCategories)
	for i := range d.HighlightCategories {
		d.HighlightCategories[i].Icon = NormalizeIcon(d.HighlightCategories[i].Icon)
		d.HighlightCategories[i].Color = NormalizeColor(d.HighlightCategories[i].Color)
	}
}

func normalizeCategories(cats []Category) {
	for i := range cats {
		cats[i].Icon = NormalizeIcon(cats[i].Icon)
		cats[i].Color = NormalizeColor(cats[i].Color)
	}
}
