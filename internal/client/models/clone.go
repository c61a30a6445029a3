package models

// Deep copies. The state store hands out snapshots so the persistence layer
// never observes a document that pages are still mutating.

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Clone returns a deep copy of the day log.
func (l *DayLog) Clone() *DayLog {
	if l == nil {
		return nil
	}
	out := &DayLog{
		Date:   l.Date,
		Weight: l.Weight,
		Hours:  make(map[int][]CategoryID, len(l.Hours)),
		Moods:  cloneStrings(l.Moods),
	}
	for h, cats := range l.Hours {
		out.Hours[h] = cloneStrings(cats)
	}
	out.Expenses = make([]Expense, len(l.Expenses))
	copy(out.Expenses, l.Expenses)
	out.Tasks = make([]Task, len(l.Tasks))
	copy(out.Tasks, l.Tasks)
	out.JournalEntries = make([]JournalEntry, len(l.JournalEntries))
	for i, e := range l.JournalEntries {
		e.Photos = cloneStrings(e.Photos)
		out.JournalEntries[i] = e
	}
	return out
}

// Clone returns a deep copy of the preferences.
func (p *Preferences) Clone() *Preferences {
	if p == nil {
		return nil
	}
	out := &Preferences{Theme: p.Theme}
	if p.CustomTheme != nil {
		t := *p.CustomTheme
		out.CustomTheme = &t
	}
	if p.Sounds != nil {
		s := *p.Sounds
		out.Sounds = &s
	}
	if p.CustomAudio != nil {
		a := *p.CustomAudio
		out.CustomAudio = &a
	}
	return out
}

// Clone returns a deep copy of the whole document.
func (d *UserDocument) Clone() *UserDocument {
	if d == nil {
		return nil
	}
	out := &UserDocument{
		Logs:        make(map[DateKey]*DayLog, len(d.Logs)),
		DisplayName: d.DisplayName,
		Preferences: d.Preferences.Clone(),
	}
	for date, l := range d.Logs {
		out.Logs[date] = l.Clone()
	}
	out.Highlights = make([]Highlight, len(d.Highlights))
	for i, h := range d.Highlights {
		h.Photos = cloneStrings(h.Photos)
		out.Highlights[i] = h
	}
	out.Categories = make([]Category, len(d.Categories))
	copy(out.Categories, d.Categories)
	out.ExpenditureCategories = make([]Category, len(d.ExpenditureCategories))
	copy(out.ExpenditureCategories, d.ExpenditureCategories)
	out.HighlightCategories = make([]HighlightCategory, len(d.HighlightCategories))
	copy(out.HighlightCategories, d.HighlightCategories)
	out.Moods = make([]MoodConfig, len(d.Moods))
	copy(out.Moods, d.Moods)
	return out
}
