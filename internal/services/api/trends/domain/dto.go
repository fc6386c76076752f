// Package domain holds DTOs for the trend views and their service contract
package domain

// YearRange bounds articles by publication year, inclusive. A zero bound
// means the matching bound of the loaded data
type YearRange struct {
	Start int `json:"start,omitempty" validate:"omitempty,min=1800,max=2200" example:"2015"`
	End   int `json:"end,omitempty" validate:"omitempty,min=1800,max=2200" example:"2023"`
}

// Filter is the selection every view accepts
type Filter struct {
	Years       *YearRange `json:"years,omitempty"`
	Granularity string     `json:"granularity,omitempty" validate:"granularity" example:"year"`
	// nil selects every company, an explicit empty list selects none
	Companies *[]string `json:"companies,omitempty" validate:"omitempty,dive,min=1,max=100"`
}

// PostsInput counts articles per bucket
type PostsInput struct {
	Filter
	ByCompany bool `json:"by_company,omitempty" example:"true"`
}

// Term view modes
const (
	ModeTerms        = "terms"
	ModeDictionaries = "dictionaries"
	ModePatterns     = "patterns"
)

// TermsInput scores terms or whole dictionaries per bucket
//
// mode terms needs dictionary and gives one column per term of it;
// mode dictionaries gives one column per dictionary (all when dictionaries is absent);
// mode patterns scores the ad hoc patterns in terms
type TermsInput struct {
	Filter
	Mode         string   `json:"mode,omitempty" validate:"omitempty,oneof=terms dictionaries patterns" example:"dictionaries"`
	Dictionary   string   `json:"dictionary,omitempty" validate:"omitempty,max=100" example:"climate_change"`
	Dictionaries []string `json:"dictionaries,omitempty" validate:"omitempty,max=50,dive,min=1,max=100"`
	Terms        []string `json:"terms,omitempty" validate:"omitempty,max=50,dive,min=1,max=200"`
	// defaults to proportion
	Measure string `json:"measure,omitempty" validate:"measure" example:"proportion"`
}

// DictionaryCompaniesInput compares one dictionary across companies
type DictionaryCompaniesInput struct {
	Filter
	Dictionary string `json:"dictionary" validate:"required,max=100" example:"climate_change"`
	// defaults to proportion
	Measure string `json:"measure,omitempty" validate:"measure" example:"proportion"`
}

// SummaryInput selects the articles for the per company summary
type SummaryInput struct {
	Filter
}

// Table is the raw tabular form of a view
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// View is a chart ready result. Data is in chart order (bucket, then company);
// Table is the same rows in display order (company, then bucket)
type View struct {
	Title  string            `json:"title" example:"Posts by Date"`
	X      string            `json:"x,omitempty" example:"year_dt"`
	Y      []string          `json:"y,omitempty"`
	Color  string            `json:"color,omitempty" example:"company_name"`
	Colors map[string]string `json:"colors,omitempty"`
	XTitle string            `json:"x_title,omitempty" example:"Date by Year"`
	YTitle string            `json:"y_title,omitempty" example:"Proportion of Words in Dictionary"`
	Data   Table             `json:"data"`
	Table  Table             `json:"table"`

	Notes []string `json:"-"`
}

// Warnings lifts recoverable input problems into the response envelope
func (v View) Warnings() []string { return v.Notes }

// CompanyOption is one entry of the company selector
type CompanyOption struct {
	Name  string `json:"name" example:"BP"`
	Color string `json:"color,omitempty" example:"#006400"`
}

// CompaniesOut lists selector options and the data year bounds
type CompaniesOut struct {
	Companies []CompanyOption `json:"companies"`
	FirstYear int             `json:"first_year,omitempty" example:"2010"`
	LastYear  int             `json:"last_year,omitempty" example:"2023"`
}

// TermOut is one dictionary term
type TermOut struct {
	Pattern string `json:"pattern" example:"climate change"`
	Color   string `json:"color,omitempty" example:"#1f77b4"`
}

// DictionaryOut describes one dictionary
type DictionaryOut struct {
	Key      string    `json:"key" example:"climate_change"`
	Label    string    `json:"label" example:"Climate Change Dictionary"`
	Color    string    `json:"color,omitempty" example:"#2ca02c"`
	Combined string    `json:"combined" example:"climate change|global warming"`
	Terms    []TermOut `json:"terms"`
}
