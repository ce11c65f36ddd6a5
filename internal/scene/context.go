package scene

// Context is the canonical, fully-normalized scene context.
//
// Enum-backed fields hold either nil or a member of their configured
// enumeration; raw unmapped strings never survive canonicalization.
type Context struct {
	LocationName  string
	LocationMajor *string
	LocationVenue *string
	WeatherType   *string
	TimeOfDay     *string
	Biome         *string
	Region        *string
	Interior      *bool
	Underground   *bool
	CrowdLevel    *string
	DangerLevel   *string
}

// Clone returns a deep copy of the context.
func (c Context) Clone() Context {
	out := c
	out.LocationMajor = cloneString(c.LocationMajor)
	out.LocationVenue = cloneString(c.LocationVenue)
	out.WeatherType = cloneString(c.WeatherType)
	out.TimeOfDay = cloneString(c.TimeOfDay)
	out.Biome = cloneString(c.Biome)
	out.Region = cloneString(c.Region)
	out.Interior = cloneBool(c.Interior)
	out.Underground = cloneBool(c.Underground)
	out.CrowdLevel = cloneString(c.CrowdLevel)
	out.DangerLevel = cloneString(c.DangerLevel)
	return out
}

// Merge overlays the non-nil fields of update onto the receiver and returns
// the merged context. The receiver is not modified. Controllers use this to
// maintain a running context across incremental updates.
func (c Context) Merge(update Context) Context {
	out := c.Clone()
	if update.LocationName != "" {
		out.LocationName = update.LocationName
	}
	if update.LocationMajor != nil {
		out.LocationMajor = cloneString(update.LocationMajor)
	}
	if update.LocationVenue != nil {
		out.LocationVenue = cloneString(update.LocationVenue)
	}
	if update.WeatherType != nil {
		out.WeatherType = cloneString(update.WeatherType)
	}
	if update.TimeOfDay != nil {
		out.TimeOfDay = cloneString(update.TimeOfDay)
	}
	if update.Biome != nil {
		out.Biome = cloneString(update.Biome)
	}
	if update.Region != nil {
		out.Region = cloneString(update.Region)
	}
	if update.Interior != nil {
		out.Interior = cloneBool(update.Interior)
	}
	if update.Underground != nil {
		out.Underground = cloneBool(update.Underground)
	}
	if update.CrowdLevel != nil {
		out.CrowdLevel = cloneString(update.CrowdLevel)
	}
	if update.DangerLevel != nil {
		out.DangerLevel = cloneString(update.DangerLevel)
	}
	return out
}

// ToInput converts the context back to raw input form. Canonicalizing the
// result yields the same context, which keeps canonicalization idempotent.
func (c Context) ToInput() Input {
	in := Input{
		LocationName:  c.LocationName,
		LocationMajor: stringValue(c.LocationMajor),
		LocationVenue: stringValue(c.LocationVenue),
		WeatherType:   stringValue(c.WeatherType),
		TimeOfDay:     stringValue(c.TimeOfDay),
		Biome:         stringValue(c.Biome),
		Region:        stringValue(c.Region),
		CrowdLevel:    stringValue(c.CrowdLevel),
		DangerLevel:   stringValue(c.DangerLevel),
	}
	in.Interior = cloneBool(c.Interior)
	in.Underground = cloneBool(c.Underground)
	return in
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
