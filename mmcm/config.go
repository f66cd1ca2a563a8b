package mmcm

import (
	"encoding/json"
	"fmt"
	"os"
)

// ProfileSpec is the JSON form of one clock profile.
type ProfileSpec struct {
	// FeedbackMultiply is the feedback divider M, 1-64.
	FeedbackMultiply int `json:"feedback_multiply"`

	// FeedbackPhase is the feedback phase offset in millidegrees.
	FeedbackPhase int `json:"feedback_phase_mdeg"`

	// Bandwidth is the loop-filter bandwidth class: "LOW" or "HIGH"
	// ("OPTIMIZED" is accepted as an alias for "HIGH").
	Bandwidth string `json:"bandwidth"`

	// InputDivide is the input pre-divider D, 1-128.
	InputDivide int `json:"input_divide"`

	// OutputDivide is the output counter divide ratio, 1-128.
	OutputDivide int `json:"output_divide"`

	// OutputPhase is the output phase offset in millidegrees.
	OutputPhase int `json:"output_phase_mdeg"`

	// OutputDuty is the output duty cycle in parts per 100000.
	OutputDuty int `json:"output_duty_ppm"`
}

// ProfileConfig holds the reconfiguration profiles resolved at
// initialization time. At most MaxProfiles entries.
type ProfileConfig struct {
	Profiles []ProfileSpec `json:"profiles"`
}

// DefaultProfileConfig returns four example profiles for a 100 MHz
// reference: 100 MHz, 200 MHz, a phase-shifted 50 MHz, and a 25%-duty
// 150 MHz output.
func DefaultProfileConfig() *ProfileConfig {
	return &ProfileConfig{
		Profiles: []ProfileSpec{
			{
				FeedbackMultiply: 10,
				Bandwidth:        "HIGH",
				InputDivide:      1,
				OutputDivide:     10,
				OutputDuty:       50000,
			},
			{
				FeedbackMultiply: 10,
				Bandwidth:        "HIGH",
				InputDivide:      1,
				OutputDivide:     5,
				OutputDuty:       50000,
			},
			{
				FeedbackMultiply: 8,
				Bandwidth:        "LOW",
				InputDivide:      1,
				OutputDivide:     16,
				OutputPhase:      90000,
				OutputDuty:       50000,
			},
			{
				FeedbackMultiply: 12,
				Bandwidth:        "HIGH",
				InputDivide:      2,
				OutputDivide:     4,
				OutputDuty:       25000,
			},
		},
	}
}

// LoadProfileConfig loads a ProfileConfig from a JSON file.
func LoadProfileConfig(path string) (*ProfileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile config file: %w", err)
	}

	config := &ProfileConfig{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse profile config: %w", err)
	}

	return config, nil
}

// Save writes the ProfileConfig to a JSON file.
func (c *ProfileConfig) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize profile config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile config file: %w", err)
	}

	return nil
}

// ClockProfiles converts the config into validated ClockProfiles.
func (c *ProfileConfig) ClockProfiles() ([]ClockProfile, error) {
	if len(c.Profiles) == 0 {
		return nil, fmt.Errorf("profile config holds no profiles")
	}
	if len(c.Profiles) > MaxProfiles {
		return nil, fmt.Errorf("profile config holds %d profiles, at most %d are addressable", len(c.Profiles), MaxProfiles)
	}

	profiles := make([]ClockProfile, 0, len(c.Profiles))
	for i, spec := range c.Profiles {
		bw, err := ParseBandwidth(spec.Bandwidth)
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		p := ClockProfile{
			FeedbackMultiply: spec.FeedbackMultiply,
			FeedbackPhase:    spec.FeedbackPhase,
			Bandwidth:        bw,
			InputDivide:      spec.InputDivide,
			OutputDivide:     spec.OutputDivide,
			OutputPhase:      spec.OutputPhase,
			OutputDuty:       spec.OutputDuty,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Validate checks every profile in the config.
func (c *ProfileConfig) Validate() error {
	_, err := c.ClockProfiles()
	return err
}
