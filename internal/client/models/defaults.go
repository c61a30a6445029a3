package models

// Seed data for a freshly registered user. Ids are stable and referenced by
// existing documents, do not rename them.

func DefaultCategories() []Category {
	return []Category{
		{ID: "sleep", Label: "Sleep", Color: "bg-pastel-purple", Icon: "Moon"},
		{ID: "work", Label: "Work/School", Color: "bg-pastel-blue", Icon: "Briefcase"},
		{ID: "leisure", Label: "Leisure", Color: "bg-pastel-yellow", Icon: "Film"},
		{ID: "social", Label: "Social", Color: "bg-pastel-pink", Icon: "Users"},
		{ID: "transit", Label: "Transit", Color: "bg-pastel-mint", Icon: "Plane"},
	}
}

func DefaultExpenditureCategories() []Category {
	return []Category{
		{ID: "food", Label: "Food & Dining", Color: "bg-pastel-green", Icon: "Utensils"},
		{ID: "transpo", Label: "Transport", Color: "bg-pastel-blue", Icon: "Car"},
		{ID: "shopping", Label: "Shopping", Color: "bg-pastel-pink", Icon: "ShoppingBag"},
		{ID: "bills", Label: "Bills & Utilities", Color: "bg-pastel-purple", Icon: "Receipt"},
		{ID: "health", Label: "Health", Color: "bg-pastel-rose", Icon: "HeartPulse"},
		{ID: "other", Label: "Other", Color: "bg-pastel-cyan", Icon: "Tag"},
	}
}

func DefaultHighlightCategories() []HighlightCategory {
	return []HighlightCategory{
		{ID: "movie", Label: "Movie/TV", Color: "bg-pastel-blue", Icon: "Film"},
		{ID: "book", Label: "Book", Color: "bg-pastel-yellow", Icon: "Book"},
		{ID: "purchase", Label: "Big Purchase", Color: "bg-pastel-rose", Icon: "ShoppingBag"},
		{ID: "food", Label: "Great Meal", Color: "bg-pastel-green", Icon: "Utensils"},
		{ID: "milestone", Label: "Milestone", Color: "bg-pastel-purple", Icon: "Flag"},
	}
}

func DefaultMoods() []MoodConfig {
	return []MoodConfig{
		{ID: "great", Emoji: "🤩", Label: "Great"},
		{ID: "good", Emoji: "😊", Label: "Good"},
		{ID: "eh", Emoji: "😐", Label: "Eh"},
		{ID: "bad", Emoji: "🥱", Label: "Bad"},
		{ID: "worst", Emoji: "😢", Label: "Worst"},
	}
}

func DefaultTheme() *ThemeConfig {
	return &ThemeConfig{
		Mode:            "custom",
		BackgroundColor: "#09090b",
		TextColor:       "#e4e4e7",
		CardColor:       "#18181b",
		AccentColor:     "#cfbaf0",
	}
}

// DefaultDocument returns the document a new user starts with: empty logs
// and the seeded category/mood sets.
func DefaultDocument() *UserDocument {
	return &UserDocument{
		Logs:                  map[DateKey]*DayLog{},
		Highlights:            []Highlight{},
		Categories:            DefaultCategories(),
		ExpenditureCategories: DefaultExpenditureCategories(),
		HighlightCategories:   DefaultHighlightCategories(),
		Moods:                 DefaultMoods(),
		Preferences:           &Preferences{CustomTheme: DefaultTheme()},
	}
}
