package models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Climate struct {
	Temperature int `json:"temperature"`
	Humidity    int `json:"humidity"`
	Rainfall    int `json:"rainfall"`
	WindSpeed   int `json:"windSpeed"`
	UVIndex     int `json:"uvIndex"`
}

type LocationData struct {
	Coordinates Coordinates `json:"coordinates"`
	Address     string      `json:"address"`
	Climate     Climate     `json:"climate"`
	SoilType    string      `json:"soilType"`
	Elevation   int         `json:"elevation"`
	Timezone    string      `json:"timezone"`
}
