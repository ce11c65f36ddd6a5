package scene

import (
	"encoding/json"
	"log"
	"os"
)

// Fragment is a partial context carried by one catalog entry. Empty strings
// and nil booleans mean "not provided"; both are equivalent absent signals.
type Fragment struct {
	Major       string `json:"major"`
	Venue       string `json:"venue"`
	Biome       string `json:"biome"`
	Region      string `json:"region"`
	WeatherType string `json:"weather_type"`
	Interior    *bool  `json:"interior"`
	Underground *bool  `json:"underground"`
	CrowdLevel  string `json:"crowd_level"`
	DangerLevel string `json:"danger_level"`
}

// Catalog maps known locations to enrichment fragments, keyed by location id
// and by normalized location name. Loaded once, read-only afterwards.
type Catalog struct {
	byID   map[string]Fragment
	byName map[string]Fragment
}

type catalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Fragment
}

type catalogFile struct {
	Locations []catalogEntry `json:"locations"`
}

// LoadCatalog reads the location catalog from a JSON file. Any read or parse
// failure falls back silently to the compiled-in defaults; loading never
// fails.
func LoadCatalog(path string) *Catalog {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultCatalog()
	}
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("scene: malformed location catalog %s, using defaults: %v", path, err)
		return DefaultCatalog()
	}
	return newCatalog(file.Locations)
}

// DefaultCatalog returns the compiled-in location catalog.
func DefaultCatalog() *Catalog {
	return newCatalog(defaultLocations)
}

func newCatalog(entries []catalogEntry) *Catalog {
	c := &Catalog{
		byID:   make(map[string]Fragment, len(entries)),
		byName: make(map[string]Fragment, len(entries)),
	}
	for _, entry := range entries {
		if entry.ID != "" {
			c.byID[entry.ID] = entry.Fragment
		}
		if name := normalizeText(entry.Name); name != "" {
			c.byName[name] = entry.Fragment
		}
	}
	return c
}

// Lookup finds the enrichment fragment for a location, trying the id before
// the normalized name.
func (c *Catalog) Lookup(locationName, locationID string) (Fragment, bool) {
	if locationID != "" {
		if frag, ok := c.byID[locationID]; ok {
			return frag, true
		}
	}
	if name := normalizeText(locationName); name != "" {
		if frag, ok := c.byName[name]; ok {
			return frag, true
		}
	}
	return Fragment{}, false
}

// Enrich fills absent fields of ctx from the catalog entry for the given
// location. Present fields are never overwritten, and TimeOfDay is never
// enriched: it must come from the live context. An unknown location returns
// ctx unchanged.
func (c *Canonicalizer) Enrich(ctx Context, locationName, locationID string) Context {
	frag, ok := c.catalog.Lookup(locationName, locationID)
	if !ok {
		log.Printf("scene: no catalog entry for location %q (id %q)", locationName, locationID)
		return ctx
	}

	out := ctx.Clone()
	fillString(&out.LocationMajor, frag.Major)
	fillString(&out.LocationVenue, frag.Venue)
	fillString(&out.Biome, frag.Biome)
	fillString(&out.Region, frag.Region)
	fillString(&out.WeatherType, frag.WeatherType)
	fillString(&out.CrowdLevel, frag.CrowdLevel)
	fillString(&out.DangerLevel, frag.DangerLevel)
	if out.Interior == nil && frag.Interior != nil {
		out.Interior = cloneBool(frag.Interior)
	}
	if out.Underground == nil && frag.Underground != nil {
		out.Underground = cloneBool(frag.Underground)
	}
	return out
}

// fillString sets the target only when it is currently absent and the
// fragment provides a value. Empty string and nil are the same absent signal.
func fillString(target **string, value string) {
	if *target != nil {
		return
	}
	value = normalizeText(value)
	if value == "" {
		return
	}
	*target = &value
}

var (
	interiorTrue    = true
	undergroundTrue = true
)

var defaultLocations = []catalogEntry{
	{
		ID:   "loc-broken-flagon",
		Name: "The Broken Flagon",
		Fragment: Fragment{
			Major:      "city",
			Venue:      "tavern",
			Region:     "westmark",
			Interior:   &interiorTrue,
			CrowdLevel: "busy",
		},
	},
	{
		ID:   "loc-whisperwood",
		Name: "Whisperwood",
		Fragment: Fragment{
			Major:       "forest",
			Biome:       "forest",
			Region:      "westmark",
			DangerLevel: "moderate",
		},
	},
	{
		ID:   "loc-drowned-crypt",
		Name: "The Drowned Crypt",
		Fragment: Fragment{
			Major:       "dungeon",
			Underground: &undergroundTrue,
			Interior:    &interiorTrue,
			CrowdLevel:  "empty",
			DangerLevel: "deadly",
		},
	},
	{
		ID:   "loc-saltmere",
		Name: "Saltmere Harbor",
		Fragment: Fragment{
			Major:      "harbor",
			Biome:      "coast",
			Region:     "saltmere",
			CrowdLevel: "moderate",
		},
	},
}
