package entity

// FoodEntry represents a single food item to be logged against the fitness
// provider's food diary.
type FoodEntry struct {
	Name     string  // Free-text food name, used when no provider food id is given.
	FoodID   int64   // Provider food id; zero means log by name instead.
	MealType int     // Provider meal type id (1=breakfast .. 7=anytime).
	UnitID   int     // Provider unit id for Amount.
	Amount   float64 // Quantity in units of UnitID.
	Calories int     // Calories, required when logging by name.
	Date     string  // Diary date in yyyy-MM-dd form.
}

// LoggedFood is the provider's confirmation of a created food log entry.
type LoggedFood struct {
	LogID    int64  // Provider id of the created log entry.
	FoodName string // Provider-resolved food name.
	Date     string // Diary date the entry was recorded under.
	Calories int    // Calories the provider recorded.
}
