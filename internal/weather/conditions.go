package weather

import "math/rand"

// conditionSet is the full label registry the generator draws from.
var conditionSet = []Condition{
	ConditionSunny,
	ConditionClear,
	ConditionPartlyCloudy,
	ConditionCloudy,
	ConditionDrizzle,
	ConditionLightRain,
	ConditionRain,
	ConditionThunderstorm,
	ConditionFoggy,
	ConditionWindy,
}

// randomCondition draws one label. Conditions are cosmetic and carry no
// cross-record consistency requirement.
func randomCondition(rng *rand.Rand) Condition {
	return conditionSet[rng.Intn(len(conditionSet))]
}
