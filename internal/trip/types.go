package trip

// general budget tier of the trip
type BudgetTier string

const (
	BudgetEconomic BudgetTier = "Economic"
	BudgetMidRange BudgetTier = "Mid-range"
	BudgetLuxury   BudgetTier = "Luxury"
)

// display language of the generated itinerary
type Language string

const (
	LanguageEnglish    Language = "English"
	LanguageFrench     Language = "Français"
	LanguageSpanish    Language = "Español"
	LanguageGerman     Language = "Deutsch"
	LanguageItalian    Language = "Italiano"
	LanguagePortuguese Language = "Português"
	LanguageJapanese   Language = "日本語"
	LanguageChinese    Language = "中文"
)

const (
	MinDuration = 1
	MaxDuration = 30
)

// Request holds the form selections for one itinerary. It is built once per
// submission and never modified afterwards.
type Request struct {
	Destination         string     `json:"destination" validate:"required,max=200"`
	Duration            int        `json:"duration" validate:"min=1,max=30"`
	Budget              BudgetTier `json:"budget" validate:"required,budget"`
	Interests           []string   `json:"interests" validate:"max=20,dive,max=100"`
	AdditionalRequests  string     `json:"additional_requests" validate:"max=2000"`
	Logistics           []string   `json:"logistics" validate:"max=20,dive,max=100"`
	SpecificConstraints string     `json:"specific_constraints" validate:"max=2000"`
	Language            Language   `json:"language" validate:"required,language"`

	// optional details
	PartySize    int    `json:"party_size,omitempty" validate:"omitempty,min=1,max=20"`
	WithChildren bool   `json:"with_children,omitempty"`
	ArrivalPoint string `json:"arrival_point,omitempty" validate:"max=200"`
	VanLife      bool   `json:"van_life,omitempty"`
}

// a selectable form option
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji,omitempty"`
}

// everything a client needs to render the trip form
type FormOptions struct {
	Languages   []Option `json:"languages"`
	Budgets     []Option `json:"budgets"`
	Interests   []Option `json:"interests"`
	Logistics   []Option `json:"logistics"`
	MinDuration int      `json:"min_duration"`
	MaxDuration int      `json:"max_duration"`
}
