package stats

type Tier int

const (
	TierNone Tier = iota
	TierVeryLight
	TierLight
	TierModerate
	TierHeavy
	TierMax
)

var tierNames = [...]string{"none", "very-light", "light", "moderate", "heavy", "max"}

func (t Tier) String() string {
	if t < TierNone || t > TierMax {
		return "unknown"
	}
	return tierNames[t]
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TierFor buckets an intensity in [0, 1].
func TierFor(intensity float64) Tier {
	switch {
	case intensity <= 0:
		return TierNone
	case intensity < 0.2:
		return TierVeryLight
	case intensity < 0.4:
		return TierLight
	case intensity < 0.6:
		return TierModerate
	case intensity < 0.8:
		return TierHeavy
	default:
		return TierMax
	}
}

type HeatCell struct {
	BodyPart  string  `json:"bodyPart"`
	Volume    float64 `json:"volume"`
	Intensity float64 `json:"intensity"`
	Tier      Tier    `json:"tier"`
}

// HeatMap scores every body part of the rollup against the busiest one.
func HeatMap(rollup Rollup) []HeatCell {
	maxVolume := 0.0
	for _, st := range rollup {
		if st.Volume > maxVolume {
			maxVolume = st.Volume
		}
	}

	cells := make([]HeatCell, 0, len(rollup))
	for _, st := range rollup {
		intensity := SafeDiv(st.Volume, maxVolume)
		cells = append(cells, HeatCell{
			BodyPart:  st.BodyPart,
			Volume:    st.Volume,
			Intensity: intensity,
			Tier:      TierFor(intensity),
		})
	}
	return cells
}
