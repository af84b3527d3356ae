package chatreply

import (
	"strings"

	"agro-advisor/internal/models"
)

type Keyword struct {
	Keyword  string
	Response string
}

// keywordTable is scanned in order; the first keyword contained in the
// lowercased message wins.
var keywordTable = []Keyword{
	{
		Keyword:  "maíz",
		Response: "Para el cultivo de maíz, la mejor época de siembra es entre marzo y mayo. Necesita suelos bien drenados y temperaturas entre 20-30°C. Te recomiendo usar fertilizante NPK 15-15-15 al momento de la siembra.",
	},
	{
		Keyword:  "tomate",
		Response: "El tomate requiere temperaturas entre 18-25°C. Siembra en almácigos primero, trasplanta a los 30-40 días. Usa fertilizante rico en fósforo para floración. Riega regularmente pero evita mojar las hojas.",
	},
	{
		Keyword:  "plagas",
		Response: "Para control de plagas, identifica primero el tipo de plaga. Para pulgones usa jabón potásico, para gusanos usa Bacillus thuringiensis. Siempre lee las etiquetas y respeta los tiempos de carencia.",
	},
	{
		Keyword:  "fertilizante",
		Response: "Los fertilizantes básicos son NPK (Nitrógeno-Fósforo-Potasio). Para crecimiento usa más N, para floración más P, para frutos más K. Aplica según análisis de suelo cuando sea posible.",
	},
}

const (
	FallbackPrefix  = "Entiendo tu consulta. "
	OnlineFallback  = "Déjame consultar la información más actualizada para darte la mejor recomendación."
	OfflineFallback = "Basándome en mi conocimiento local, te sugiero consultar con un agrónomo local para casos específicos."
)

var ReplySuggestions = []string{
	"Más información",
	"¿Qué productos usar?",
	"Simular cultivo",
	"Otra consulta",
}

var FrequentQuestions = []string{
	"¿Cuándo sembrar?",
	"Control de plagas",
	"Tipos de fertilizantes",
	"Riego adecuado",
	"Cosecha óptima",
}

// Keywords returns the table in match order.
func Keywords() []Keyword {
	return append([]Keyword(nil), keywordTable...)
}

// Match returns the first table entry whose keyword occurs in message.
func Match(message string) (Keyword, bool) {
	lower := strings.ToLower(message)
	for _, k := range keywordTable {
		if strings.Contains(lower, k.Keyword) {
			return k, true
		}
	}
	return Keyword{}, false
}

// Reply answers message. keyword is empty when the fallback was used.
func Reply(message string, online bool) (text, keyword string) {
	if k, ok := Match(message); ok {
		return k.Response, k.Keyword
	}
	if online {
		return FallbackPrefix + OnlineFallback, ""
	}
	return FallbackPrefix + OfflineFallback, ""
}

// Speak wraps text for the client's speech synthesis.
func Speak(text string) *models.Utterance {
	return models.NewUtterance(text)
}
