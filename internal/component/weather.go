package component

// WeatherKind names a weather condition.
type WeatherKind int

const (
	WeatherClear WeatherKind = iota
	WeatherRain
	WeatherFog
	WeatherStorm
	WeatherSnow
	WeatherSandstorm
)

func (k WeatherKind) String() string {
	switch k {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherFog:
		return "fog"
	case WeatherStorm:
		return "storm"
	case WeatherSnow:
		return "snow"
	case WeatherSandstorm:
		return "sandstorm"
	default:
		return "unknown"
	}
}

// ParseWeatherKind maps a stored name back to a kind. Unrecognized names
// report ok=false so callers can fall back to clear.
func ParseWeatherKind(name string) (WeatherKind, bool) {
	switch name {
	case "clear":
		return WeatherClear, true
	case "rain":
		return WeatherRain, true
	case "fog":
		return WeatherFog, true
	case "storm":
		return WeatherStorm, true
	case "snow":
		return WeatherSnow, true
	case "sandstorm":
		return WeatherSandstorm, true
	default:
		return WeatherClear, false
	}
}

// WeatherEffects are the fixed per-type modifiers. Values not called out
// for a type are the identity.
type WeatherEffects struct {
	Intensity   float64 // target intensity when fully committed
	Visibility  float64 // multiplier ∈ [0,1]
	Wind        float64
	PlayerSpeed float64
}

var weatherEffects = map[WeatherKind]WeatherEffects{
	WeatherClear:     {Intensity: 0.0, Visibility: 1.0, Wind: 1.0, PlayerSpeed: 1.0},
	WeatherRain:      {Intensity: 0.7, Visibility: 0.8, Wind: 1.0, PlayerSpeed: 1.0},
	WeatherFog:       {Intensity: 0.6, Visibility: 0.5, Wind: 1.0, PlayerSpeed: 1.0},
	WeatherStorm:     {Intensity: 1.0, Visibility: 1.0, Wind: 3.0, PlayerSpeed: 1.0},
	WeatherSnow:      {Intensity: 0.5, Visibility: 1.0, Wind: 1.0, PlayerSpeed: 0.85},
	WeatherSandstorm: {Intensity: 0.9, Visibility: 0.3, Wind: 4.0, PlayerSpeed: 1.0},
}

// Effects returns the fixed modifier set for a weather kind.
func (k WeatherKind) Effects() WeatherEffects {
	if e, ok := weatherEffects[k]; ok {
		return e
	}
	return weatherEffects[WeatherClear]
}

// WeatherState is the weather singleton. Invariant: TransitionProgress
// reaching 1.0 implies HasNext is false again and Current is the committed
// target. DurationLeft is a plain countdown polled by the weather system.
type WeatherState struct {
	Current WeatherKind
	Next    WeatherKind
	HasNext bool

	TransitionProgress float64 // [0,1], meaningful only while HasNext
	Intensity          float64 // [0,1]
	VisibilityModifier float64 // [0,1]
	WindMultiplier     float64
	SpeedModifier      float64 // player speed multiplier

	DurationLeft float64 // seconds until the next transition is drawn
}

// NewWeatherState builds the singleton in steady clear weather.
func NewWeatherState(holdSeconds float64) *WeatherState {
	w := &WeatherState{Current: WeatherClear, DurationLeft: holdSeconds}
	w.ApplySteady()
	return w
}

// ApplySteady snaps the derived modifiers to Current's fixed effects.
func (w *WeatherState) ApplySteady() {
	e := w.Current.Effects()
	w.Intensity = e.Intensity
	w.VisibilityModifier = e.Visibility
	w.WindMultiplier = e.Wind
	w.SpeedModifier = e.PlayerSpeed
}
