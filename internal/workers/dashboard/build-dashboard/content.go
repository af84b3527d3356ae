package builddashboard

const (
	AppName = "Agro+"
	Tagline = "Cultiva mas"
)

var tabs = []Tab{
	{ID: "dashboard", Label: "Dashboard"},
	{ID: "chat", Label: "Consultas"},
	{ID: "simulator", Label: "Simulador"},
	{ID: "products", Label: "Productos"},
	{ID: "location", Label: "Ubicación"},
	{ID: "tutorials", Label: "Tutoriales"},
}

var quickStats = []Stat{
	{Label: "Cultivos Simulados", Value: 12},
	{Label: "Consultas Realizadas", Value: 48},
	{Label: "Productos Consultados", Value: 23},
	{Label: "Rentabilidad Promedio", Value: 85, Suffix: "%"},
}

var currentConditions = []Condition{
	{Label: "Temperatura", Value: "24°C"},
	{Label: "Humedad", Value: "68%"},
	{Label: "Precipitación", Value: "2mm"},
}

var dailyRecommendations = []Recommendation{
	{Badge: "Riego", Text: "Condiciones ideales para riego matutino"},
	{Badge: "Siembra", Text: "Época favorable para cultivos de temporada"},
}

var upcomingTasks = []string{
	"Fertilización - Lote A",
	"Control de plagas - Lote B",
	"Cosecha - Lote C",
}

var tutorials = []Tutorial{
	{Title: "Primeros Pasos", Description: "Configuración inicial y navegación básica"},
	{Title: "Usar el Simulador", Description: "Cómo simular cultivos y interpretar resultados"},
	{Title: "Chatbot Inteligente", Description: "Hacer consultas efectivas al asistente"},
	{Title: "Modo Offline", Description: "Usar la app sin conexión a internet"},
}

// DefaultTips is the rotation pool; the first two are featured on day one.
var DefaultTips = []string{
	"Riego: Las primeras horas de la mañana son ideales para regar.",
	"Observación: Revisa tus plantas diariamente para detectar problemas temprano.",
	"Suelo: Analiza tu suelo antes de cada temporada para ajustar la fertilización.",
	"Rotación: Alterna familias de cultivos para cortar el ciclo de plagas.",
	"Cosecha: Cosecha en horas frescas para conservar la calidad del producto.",
	"Semillas: Usa semilla certificada para asegurar germinación y sanidad.",
}
