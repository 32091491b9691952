// SPDX-License-Identifier: EPL-2.0

package enhance

import (
	"fmt"
	"strings"
)

// Custom is the preset name that means "take the values from the sliders".
const Custom = "Custom"

// Preset is a named, fixed parameter triple.
type Preset struct {
	Name        string
	Description string
	Params      Params
}

// builtin presets in display order.
var builtin = []Preset{
	{
		Name:        "Podcast",
		Description: "Spoken word with moderate room noise",
		Params:      Params{NoiseReduction: 0.7, Amplification: 1.2, Normalization: 1.0},
	},
	{
		Name:        "Music",
		Description: "Light cleanup that keeps dynamics",
		Params:      Params{NoiseReduction: 0.3, Amplification: 1.0, Normalization: 0.9},
	},
	{
		Name:        "Voice Memo",
		Description: "Quiet phone recordings with heavy hiss",
		Params:      Params{NoiseReduction: 0.9, Amplification: 1.5, Normalization: 1.0},
	},
	{
		Name:        "Interview",
		Description: "Two voices recorded at a distance",
		Params:      Params{NoiseReduction: 0.6, Amplification: 1.1, Normalization: 1.0},
	},
}

// DefaultPreset is selected when nothing else is asked for.
const DefaultPreset = "Podcast"

// Presets returns the built-in presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(builtin))
	copy(out, builtin)

	return out
}

// LookupPreset finds a built-in preset by name, ignoring case. Custom is
// not a preset and is rejected like any other unknown name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range builtin {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}

	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Resolve returns the parameters for a preset name, or custom when the
// name is Custom. The result is validated either way.
func Resolve(name string, custom Params) (Params, error) {
	params := custom
	if !strings.EqualFold(strings.TrimSpace(name), Custom) {
		p, err := LookupPreset(name)
		if err != nil {
			return Params{}, err
		}
		params = p.Params
	}

	if err := params.Validate(); err != nil {
		return Params{}, err
	}

	return params, nil
}
