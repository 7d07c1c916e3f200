package nutrition

// Macros is a daily macronutrient split in grams. Values are never
// mutated in place; adjusted splits are always reconstructed.
type Macros struct {
	ProteinG int
	CarbsG   int
	FatsG    int
}

// TotalCalories derives calories from the macro split using the 4-4-9
// rule (4 kcal/g protein and carbs, 9 kcal/g fat).
func (m Macros) TotalCalories() int {
	return m.ProteinG*4 + m.CarbsG*4 + m.FatsG*9
}
