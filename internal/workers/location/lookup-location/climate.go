package lookuplocation

import (
	"math"

	"agro-advisor/internal/common/random"
	"agro-advisor/internal/models"
)

const (
	Timezone = "GMT-5"

	FavorableSummary = "Las condiciones climáticas son favorables para la mayoría de cultivos."
)

var SoilTypes = []string{"Arcilloso", "Franco", "Arenoso", "Limoso"}

func round(v float64) int {
	return int(math.Round(v))
}

// MockClimate draws the climate block, soil type and elevation in that order.
func MockClimate(rng random.Source) (models.Climate, string, int) {
	climate := models.Climate{
		Temperature: round(rng.Float64()*15 + 15),
		Humidity:    round(rng.Float64()*30 + 50),
		Rainfall:    round(rng.Float64()*100 + 50),
		WindSpeed:   round(rng.Float64()*10 + 5),
		UVIndex:     round(rng.Float64()*5 + 3),
	}
	soil := SoilTypes[rng.Intn(len(SoilTypes))]
	elevation := round(rng.Float64()*1000 + 500)
	return climate, soil, elevation
}

// Recommend returns the climate advice; an empty list means conditions are
// favourable and FavorableSummary applies.
func Recommend(c models.Climate) []string {
	recommendations := []string{}
	if c.Temperature > 25 {
		recommendations = append(recommendations, "Considera cultivos resistentes al calor")
	}
	if c.Humidity > 70 {
		recommendations = append(recommendations, "Monitorea enfermedades fúngicas")
	}
	if c.Rainfall < 80 {
		recommendations = append(recommendations, "Planifica sistema de riego")
	}
	return recommendations
}
