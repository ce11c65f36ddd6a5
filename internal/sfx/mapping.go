package sfx

import (
	"encoding/json"
	"log"
	"os"
)

// One-shot categories driven by context updates.
const (
	CategoryVenue   = "venue"
	CategoryWeather = "weather"
	CategoryCrowd   = "crowd"
)

// LoadMapping reads the category/value to relative-path table from a JSON
// file. Any read or parse failure falls back silently to the compiled-in
// defaults; loading never fails.
func LoadMapping(path string) map[string]map[string]string {
	if path == "" {
		return defaultMapping()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultMapping()
	}
	var mapping map[string]map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		log.Printf("sfx: malformed mapping %s, using defaults: %v", path, err)
		return defaultMapping()
	}
	return mapping
}

func defaultMapping() map[string]map[string]string {
	return map[string]map[string]string{
		CategoryVenue: {
			"tavern":    "oneshot/tavern_door.ogg",
			"market":    "oneshot/market_bell.ogg",
			"smithy":    "oneshot/anvil_ring.ogg",
			"temple":    "oneshot/temple_chime.ogg",
			"inn":       "oneshot/inn_creak.ogg",
			"graveyard": "oneshot/crow_caw.ogg",
			"dock":      "oneshot/gull_cry.ogg",
		},
		CategoryWeather: {
			"rain":    "oneshot/rain_start.ogg",
			"storm":   "oneshot/thunder_roll.ogg",
			"thunder": "oneshot/thunder_crack.ogg",
			"snow":    "oneshot/wind_gust.ogg",
			"wind":    "oneshot/wind_gust.ogg",
			"fog":     "oneshot/fog_hush.ogg",
		},
		CategoryCrowd: {
			"sparse": "oneshot/murmur_low.ogg",
			"busy":   "oneshot/murmur_mid.ogg",
			"packed": "oneshot/crowd_roar.ogg",
		},
		"ui": {
			"click":   "ui/click.ogg",
			"open":    "ui/open.ogg",
			"close":   "ui/close.ogg",
			"confirm": "ui/confirm.ogg",
		},
		"event": {
			"level_up":   "event/level_up.ogg",
			"quest_done": "event/quest_done.ogg",
			"loot":       "event/loot.ogg",
			"death":      "event/death.ogg",
		},
		"magic": {
			"cast_fire":  "magic/cast_fire.ogg",
			"cast_frost": "magic/cast_frost.ogg",
			"heal":       "magic/heal.ogg",
			"ward":       "magic/ward.ogg",
		},
	}
}
