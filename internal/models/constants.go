package models

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
	MealTypeTimeBased MealType = "time_based"

	StatusNone     IngredientStatus = "none"
	StatusSuccess  IngredientStatus = "success"
	StatusAllergic IngredientStatus = "allergic"
	StatusWatching IngredientStatus = "watching"

	DefaultWeightPerCube = 20
	DefaultTargetCount   = 14

	// ShelfLifeDays is how long a frozen cube keeps after it is made.
	ShelfLifeDays = 14
	// NearExpiryDays is the inclusive window in which a cube counts as expiring soon.
	NearExpiryDays = 3
)
