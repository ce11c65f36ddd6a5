package scene

// Input is a raw, partially-specified context update as reported by game
// systems. Fields accept arbitrary casing and synonyms; empty strings mean
// "not reported". Both flat fields and the nested Location/Weather forms are
// accepted; the flat field wins when both are set.
type Input struct {
	Location LocationInput `json:"location"`
	Weather  WeatherInput  `json:"weather"`

	LocationName  string `json:"location_name"`
	LocationMajor string `json:"location_major"`
	LocationVenue string `json:"location_venue"`
	WeatherType   string `json:"weather_type"`
	TimeOfDay     string `json:"time_of_day"`
	Biome         string `json:"biome"`
	Region        string `json:"region"`
	CrowdLevel    string `json:"crowd_level"`
	DangerLevel   string `json:"danger_level"`

	Interior    *bool `json:"interior"`
	Underground *bool `json:"underground"`
}

// LocationInput is the nested location form of a raw context update.
type LocationInput struct {
	Name  string `json:"name"`
	Major string `json:"major"`
	Venue string `json:"venue"`
}

// WeatherInput is the nested weather form of a raw context update.
type WeatherInput struct {
	Type string `json:"type"`
}

func (in Input) locationName() string {
	if in.LocationName != "" {
		return in.LocationName
	}
	return in.Location.Name
}

func (in Input) locationMajor() string {
	if in.LocationMajor != "" {
		return in.LocationMajor
	}
	return in.Location.Major
}

func (in Input) locationVenue() string {
	if in.LocationVenue != "" {
		return in.LocationVenue
	}
	return in.Location.Venue
}

func (in Input) weatherType() string {
	if in.WeatherType != "" {
		return in.WeatherType
	}
	return in.Weather.Type
}
