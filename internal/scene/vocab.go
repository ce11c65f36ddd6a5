package scene

import (
	"encoding/json"
	"log"
	"os"
)

// Enum domains recognized by the canonicalizer.
const (
	DomainLocationMajor = "location_major"
	DomainLocationVenue = "location_venue"
	DomainWeatherType   = "weather_type"
	DomainTimeOfDay     = "time_of_day"
	DomainBiome         = "biome"
	DomainCrowdLevel    = "crowd_level"
	DomainDangerLevel   = "danger_level"
)

// Vocab holds the enumeration and synonym tables used during
// canonicalization. Tables are loaded once and never mutated afterwards.
type Vocab struct {
	enums    map[string]map[string]bool
	synonyms map[string]map[string]string
}

type vocabEnumFile map[string][]string

type vocabSynonymFile map[string]map[string]string

// LoadVocab reads the enumeration and synonym tables from JSON files.
// Any read or parse failure falls back silently to the compiled-in defaults;
// loading never fails.
func LoadVocab(enumPath, synonymPath string) *Vocab {
	v := DefaultVocab()

	if enumPath != "" {
		data, err := os.ReadFile(enumPath)
		if err == nil {
			var file vocabEnumFile
			if jsonErr := json.Unmarshal(data, &file); jsonErr == nil {
				v.enums = buildEnums(file)
			} else {
				log.Printf("scene: malformed enum table %s, using defaults: %v", enumPath, jsonErr)
			}
		}
	}

	if synonymPath != "" {
		data, err := os.ReadFile(synonymPath)
		if err == nil {
			var file vocabSynonymFile
			if jsonErr := json.Unmarshal(data, &file); jsonErr == nil {
				v.synonyms = buildSynonyms(file)
			} else {
				log.Printf("scene: malformed synonym table %s, using defaults: %v", synonymPath, jsonErr)
			}
		}
	}

	return v
}

// DefaultVocab returns the compiled-in enumeration and synonym tables.
func DefaultVocab() *Vocab {
	return &Vocab{
		enums:    buildEnums(defaultEnums),
		synonyms: buildSynonyms(defaultSynonyms),
	}
}

// Allowed reports whether value is a member of the domain's enumeration.
// Domains without a configured enumeration accept any value.
func (v *Vocab) Allowed(domain, value string) bool {
	members, ok := v.enums[domain]
	if !ok {
		return true
	}
	return members[value]
}

// HasEnum reports whether the domain has a configured enumeration.
func (v *Vocab) HasEnum(domain string) bool {
	_, ok := v.enums[domain]
	return ok
}

// Resolve maps a raw value through the domain's synonym table. It returns
// the canonical value and whether a synonym entry matched; values without an
// entry resolve to themselves.
func (v *Vocab) Resolve(domain, raw string) (string, bool) {
	table, ok := v.synonyms[domain]
	if !ok {
		return raw, false
	}
	canonical, found := table[raw]
	if !found {
		return raw, false
	}
	return canonical, true
}

func buildEnums(src map[string][]string) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(src))
	for domain, values := range src {
		members := make(map[string]bool, len(values))
		for _, value := range values {
			members[value] = true
		}
		out[domain] = members
	}
	return out
}

func buildSynonyms(src map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(src))
	for domain, table := range src {
		copied := make(map[string]string, len(table))
		for raw, canonical := range table {
			copied[raw] = canonical
		}
		out[domain] = copied
	}
	return out
}

var defaultEnums = map[string][]string{
	DomainLocationMajor: {
		"city", "village", "forest", "mountain", "dungeon", "castle",
		"harbor", "plains", "swamp", "desert", "ruins", "cave", "road",
		"river", "temple",
	},
	DomainLocationVenue: {
		"tavern", "market", "smithy", "temple", "shop", "inn", "guildhall",
		"dock", "arena", "library", "graveyard", "farm", "mine", "manor",
	},
	DomainWeatherType: {
		"clear", "rain", "storm", "thunder", "snow", "fog", "wind", "overcast",
	},
	DomainTimeOfDay: {
		"pre_dawn", "dawn", "morning", "noon", "afternoon", "evening",
		"sunset", "night", "midnight",
	},
	DomainBiome: {
		"forest", "plains", "mountain", "swamp", "desert", "tundra",
		"coast", "jungle", "underground",
	},
	DomainCrowdLevel: {
		"empty", "sparse", "moderate", "busy", "packed",
	},
	DomainDangerLevel: {
		"safe", "low", "guarded", "moderate", "high", "deadly",
	},
}

var defaultSynonyms = map[string]map[string]string{
	DomainLocationMajor: {
		"town":    "city",
		"hamlet":  "village",
		"woods":   "forest",
		"wood":    "forest",
		"grove":   "forest",
		"port":    "harbor",
		"docks":   "harbor",
		"keep":    "castle",
		"fort":    "castle",
		"grotto":  "cave",
		"cavern":  "cave",
		"crypt":   "dungeon",
		"wastes":  "desert",
		"marsh":   "swamp",
		"highway": "road",
	},
	DomainLocationVenue: {
		"pub":        "tavern",
		"bar":        "tavern",
		"alehouse":   "tavern",
		"forge":      "smithy",
		"blacksmith": "smithy",
		"church":     "temple",
		"shrine":     "temple",
		"store":      "shop",
		"bazaar":     "market",
		"cemetery":   "graveyard",
	},
	DomainWeatherType: {
		"rainy":        "rain",
		"drizzle":      "rain",
		"downpour":     "rain",
		"sunny":        "clear",
		"cloudy":       "overcast",
		"snowy":        "snow",
		"blizzard":     "snow",
		"mist":         "fog",
		"misty":        "fog",
		"foggy":        "fog",
		"windy":        "wind",
		"breeze":       "wind",
		"gale":         "storm",
		"thunderstorm": "storm",
		"none":         "",
	},
	DomainTimeOfDay: {
		"midday":                "noon",
		"dusk":                  "sunset",
		"twilight":              "sunset",
		"daybreak":              "dawn",
		"sunrise":               "dawn",
		"nighttime":             "night",
		"dead of night":         "midnight",
		"the hours before dawn": "pre_dawn",
	},
	DomainCrowdLevel: {
		"deserted":              "empty",
		"quiet":                 "sparse",
		"crowded":               "busy",
		"bustling":              "busy",
		"packed to the rafters": "packed",
	},
	DomainDangerLevel: {
		"none":      "safe",
		"peaceful":  "safe",
		"dangerous": "high",
		"perilous":  "high",
		"lethal":    "deadly",
	},
}
