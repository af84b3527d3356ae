package simulatecrop

import "agro-advisor/internal/models"

var (
	crops = []models.Option{
		{Value: "maiz", Label: "Maíz"},
		{Value: "tomate", Label: "Tomate"},
		{Value: "frijol", Label: "Frijol"},
		{Value: "papa", Label: "Papa"},
		{Value: "arroz", Label: "Arroz"},
		{Value: "cafe", Label: "Café"},
	}

	seasons = []models.Option{
		{Value: "primavera", Label: "Primavera"},
		{Value: "verano", Label: "Verano"},
		{Value: "otono", Label: "Otoño"},
		{Value: "invierno", Label: "Invierno"},
	}

	fertilizers = []models.Option{
		{Value: "npk-15-15-15", Label: "NPK 15-15-15 (Balanceado)"},
		{Value: "urea", Label: "Urea (Alto Nitrógeno)"},
		{Value: "superfosfato", Label: "Superfosfato (Alto Fósforo)"},
		{Value: "organico", Label: "Fertilizante Orgánico"},
	}

	pesticides = []models.Option{
		{Value: "biologico", Label: "Control Biológico"},
		{Value: "sistemico", Label: "Pesticida Sistémico"},
		{Value: "contacto", Label: "Pesticida de Contacto"},
		{Value: "preventivo", Label: "Tratamiento Preventivo"},
	}

	seedTypes = []models.Option{
		{Value: "hibrida", Label: "Semilla Híbrida"},
		{Value: "certificada", Label: "Semilla Certificada"},
		{Value: "criolla", Label: "Semilla Criolla"},
		{Value: "transgenica", Label: "Semilla Transgénica"},
	}
)

var (
	Risks = []string{
		"Riesgo climático moderado",
		"Fluctuación de precios",
		"Disponibilidad de agua",
	}

	Recommendations = []string{
		"Considerar sistema de riego por goteo",
		"Implementar rotación de cultivos",
		"Monitoreo constante de plagas",
	}
)

func GetOptions() Options {
	return Options{
		Crops:       append([]models.Option(nil), crops...),
		Seasons:     append([]models.Option(nil), seasons...),
		Fertilizers: append([]models.Option(nil), fertilizers...),
		Pesticides:  append([]models.Option(nil), pesticides...),
		Seeds:       append([]models.Option(nil), seedTypes...),
	}
}

// Rating is the badge shown next to the viability percentage.
func Rating(viability int) string {
	switch {
	case viability >= 80:
		return "Excelente"
	case viability >= 60:
		return "Buena"
	default:
		return "Riesgosa"
	}
}
