package trip

var languages = []Language{
	LanguageEnglish,
	LanguageFrench,
	LanguageSpanish,
	LanguageGerman,
	LanguageItalian,
	LanguagePortuguese,
	LanguageJapanese,
	LanguageChinese,
}

var budgets = []BudgetTier{BudgetEconomic, BudgetMidRange, BudgetLuxury}

var interestOptions = []Option{
	{Value: "Culture & Museums", Label: "Culture & Museums", Emoji: "🏛️"},
	{Value: "Local Gastronomy", Label: "Local Gastronomy", Emoji: "🍜"},
	{Value: "Art & Monuments", Label: "Art & Monuments", Emoji: "🎨"},
	{Value: "Shopping", Label: "Shopping", Emoji: "🛍️"},
	{Value: "Nature & Parks", Label: "Nature & Parks", Emoji: "🌲"},
	{Value: "Nightlife", Label: "Nightlife", Emoji: "🌙"},
	{Value: "Adventure & Sports", Label: "Adventure & Sports", Emoji: "🚵"},
	{Value: "Relaxation", Label: "Relaxation", Emoji: "🏖️"},
}

var logisticsOptions = []Option{
	{Value: "Relaxed pace", Label: "Relaxed", Emoji: "🧘"},
	{Value: "Moderate pace", Label: "Moderate", Emoji: "🏃"},
	{Value: "Fast pace", Label: "Fast-Paced", Emoji: "⚡"},
	{Value: "Focus on public transport", Label: "Public Transport", Emoji: "🚇"},
	{Value: "Focus on walking", Label: "Walking", Emoji: "🚶"},
	{Value: "Wheelchair accessible", Label: "Wheelchair Accessible", Emoji: "♿"},
}

// returns the form catalogs
func Options() FormOptions {
	opts := FormOptions{
		Interests:   append([]Option(nil), interestOptions...),
		Logistics:   append([]Option(nil), logisticsOptions...),
		MinDuration: MinDuration,
		MaxDuration: MaxDuration,
	}

	for _, l := range languages {
		opts.Languages = append(opts.Languages, Option{Value: string(l), Label: string(l)})
	}

	for _, b := range budgets {
		opts.Budgets = append(opts.Budgets, Option{Value: string(b), Label: string(b)})
	}

	return opts
}

func (b BudgetTier) Valid() bool {
	for _, known := range budgets {
		if b == known {
			return true
		}
	}
	return false
}

func (l Language) Valid() bool {
	for _, known := range languages {
		if l == known {
			return true
		}
	}
	return false
}
