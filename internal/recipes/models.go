package recipes

// Recipe is a single recipe returned by the recipe API.
type Recipe struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
	ReadyMin int     `json:"readyInMinutes"`
	URL      string  `json:"sourceUrl"`
}

// SearchParams constrains a nutrient search. Zero max values are
// omitted from the query.
type SearchParams struct {
	MinCalories int
	MaxCalories int
	MinProteinG int
	MaxCarbsG   int
	MaxResults  int
}
