package scene

import "strings"

// Canonicalizer normalizes raw context input against a vocabulary and
// enriches sparse contexts from a location catalog. It carries no per-call
// state and is safe for concurrent use once constructed.
type Canonicalizer struct {
	vocab   *Vocab
	catalog *Catalog
}

// NewCanonicalizer creates a canonicalizer. A nil vocab or catalog falls
// back to the compiled-in defaults.
func NewCanonicalizer(vocab *Vocab, catalog *Catalog) *Canonicalizer {
	if vocab == nil {
		vocab = DefaultVocab()
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Canonicalizer{vocab: vocab, catalog: catalog}
}

// Canonicalize normalizes a raw input into a canonical Context.
//
// Each enum-backed field is trimmed and lowercased, resolved through the
// domain's synonym table, and checked against the enumeration. A synonym
// resolving to the empty string means "treat as absent" and produces no
// warning; an unrecognized value after resolution becomes nil and records a
// warning keyed by the field's domain name. Free-text fields are trimmed and
// lowercased only.
func (c *Canonicalizer) Canonicalize(in Input) (Context, map[string]string) {
	warnings := map[string]string{}

	ctx := Context{
		LocationName: normalizeText(in.locationName()),
	}
	ctx.LocationMajor = c.resolveEnum(DomainLocationMajor, in.locationMajor(), warnings)
	ctx.LocationVenue = c.resolveEnum(DomainLocationVenue, in.locationVenue(), warnings)
	ctx.WeatherType = c.resolveEnum(DomainWeatherType, in.weatherType(), warnings)
	ctx.TimeOfDay = c.resolveEnum(DomainTimeOfDay, in.TimeOfDay, warnings)
	ctx.Biome = c.resolveEnum(DomainBiome, in.Biome, warnings)
	ctx.CrowdLevel = c.resolveEnum(DomainCrowdLevel, in.CrowdLevel, warnings)
	ctx.DangerLevel = c.resolveEnum(DomainDangerLevel, in.DangerLevel, warnings)

	if region := normalizeText(in.Region); region != "" {
		ctx.Region = &region
	}
	ctx.Interior = cloneBool(in.Interior)
	ctx.Underground = cloneBool(in.Underground)

	return ctx, warnings
}

// resolveEnum runs the trim/lowercase -> synonym -> enumeration pipeline for
// one field. It returns nil for absent, suppressed, or unrecognized values,
// recording a warning only in the unrecognized case.
func (c *Canonicalizer) resolveEnum(domain, raw string, warnings map[string]string) *string {
	value := normalizeText(raw)
	if value == "" {
		return nil
	}

	resolved, _ := c.vocab.Resolve(domain, value)
	if resolved == "" {
		// A synonym mapping to the empty string suppresses the value
		// without a warning.
		return nil
	}

	if c.vocab.HasEnum(domain) && !c.vocab.Allowed(domain, resolved) {
		warnings[domain] = "Unrecognized '" + value + "', set to None"
		return nil
	}
	return &resolved
}

func normalizeText(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
