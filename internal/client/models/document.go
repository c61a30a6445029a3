// Package models defines the Lumina user document: the single JSON blob that
// holds every log, category, mood and highlight for one user. The document is
// fetched whole, mutated whole and persisted whole; there is no partial
// update on the wire.
package models

// CategoryID identifies an activity or expenditure category.
type CategoryID = string

// DateKey is an ISO calendar date in YYYY-MM-DD form. Keys of this form
// compare chronologically with plain string comparison.
type DateKey = string

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Category tags hours or expenses. Color and Icon are identifiers from the
// closed sets in identifiers.go, not free-form strings.
type Category struct {
	ID    CategoryID `json:"id"`
	Label string     `json:"label"`
	Color string     `json:"color"`
	Icon  string     `json:"icon"`
}

// HighlightCategory classifies highlights (movie, book, milestone, ...).
type HighlightCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// MoodConfig is a selectable mood.
type MoodConfig struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// Expense is a single expenditure on a day. Amount is currency-agnostic and
// must be non-negative. Category references a Category id but is not
// foreign-key enforced.
type Expense struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// JournalEntry is a free-text note with optional photo references.
// Timestamp is a display-formatted time string and is not sortable across
// days.
type JournalEntry struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Timestamp string   `json:"timestamp"`
	Photos    []string `json:"photos,omitempty"`
}

// Task is a todo item on a day. An empty Time means "unscheduled"; the
// rollover engine only ever moves incomplete unscheduled tasks, a task with
// a non-empty Time stays on its day forever.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Time      string   `json:"time"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority,omitempty"`
}

// Scheduled reports whether the task is pinned to a time of day.
func (t Task) Scheduled() bool { return t.Time != "" }

// Highlight is a memorable item (movie, meal, milestone) pinned to a date.
// Type references a HighlightCategory id.
type Highlight struct {
	ID     string   `json:"id"`
	Date   DateKey  `json:"date"`
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	Rating int      `json:"rating,omitempty"`
	Notes  string   `json:"notes,omitempty"`
	Photos []string `json:"photos,omitempty"`
}

// ThemeConfig holds the custom theme colors.
type ThemeConfig struct {
	Mode            string `json:"mode"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	AccentColor     string `json:"accentColor"`
	CardColor       string `json:"cardColor"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// SoundPrefs toggles UI sounds.
type SoundPrefs struct {
	Enabled     bool `json:"enabled"`
	Pop         bool `json:"pop"`
	Celebration bool `json:"celebration"`
}

// CustomSounds holds user-supplied audio data references.
type CustomSounds struct {
	Pop         string `json:"pop,omitempty"`
	Celebration string `json:"celebration,omitempty"`
}

// Preferences is the optional per-user configuration blob.
type Preferences struct {
	Theme       string        `json:"theme,omitempty"`
	CustomTheme *ThemeConfig  `json:"customTheme,omitempty"`
	Sounds      *SoundPrefs   `json:"sounds,omitempty"`
	CustomAudio *CustomSounds `json:"customAudio,omitempty"`
}

// DayLog is everything recorded for a single calendar date. Date must equal
// the key under which the log is stored in UserDocument.Logs. Hours maps an
// hour of day (0–23) to the set of category ids active in that hour.
type DayLog struct {
	Date           DateKey              `json:"date"`
	Hours          map[int][]CategoryID `json:"hours"`
	Expenses       []Expense            `json:"expenses"`
	Weight         float64              `json:"weight,omitempty"`
	Moods          []string             `json:"moods"`
	JournalEntries []JournalEntry       `json:"journalEntries"`
	Tasks          []Task               `json:"tasks"`
}

// NewDayLog returns an empty log for the given date.
func NewDayLog(date DateKey) *DayLog {
	return &DayLog{
		Date:           date,
		Hours:          map[int][]CategoryID{},
		Expenses:       []Expense{},
		Moods:          []string{},
		JournalEntries: []JournalEntry{},
		Tasks:          []Task{},
	}
}

// TaskByID returns the index of the task with the given id, or -1.
func (l *DayLog) TaskByID(id string) int {
	for i, t := range l.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// UserDocument is the unit of persistence: one document per user.
type UserDocument struct {
	Logs                  map[DateKey]*DayLog `json:"logs"`
	Highlights            []Highlight         `json:"highlights"`
	Categories            []Category          `json:"categories"`
	ExpenditureCategories []Category          `json:"expenditureCategories"`
	HighlightCategories   []HighlightCategory `json:"highlightCategories"`
	Moods                 []MoodConfig        `json:"moods"`
	Preferences           *Preferences        `json:"preferences,omitempty"`
	DisplayName           string              `json:"displayName,omitempty"`
}

// Log returns the day log for date, or nil if none exists yet.
func (d *UserDocument) Log(date DateKey) *DayLog {
	return d.Logs[date]
}

// EnsureLog returns the day log for date, creating an empty one first if
// needed.
func (d *UserDocument) EnsureLog(date DateKey) *DayLog {
	if d.Logs == nil {
		d.Logs = map[DateKey]*DayLog{}
	}
	if l, ok := d.Logs[date]; ok {
		return l
	}
	l := NewDayLog(date)
	d.Logs[date] = l
	return l
}
