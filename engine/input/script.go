// Package input provides a scripted rig.InputSource for headless runs and tests.
package input

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-rts/common"
)

// Step is one timed segment of a script. Keys and the middle button are held for the whole
// step; scroll is delivered once when the step begins.
type Step struct {
	Duration float32     `yaml:"duration"`          // seconds
	Keys     []string    `yaml:"keys,flow"`         // names accepted by common.KeyByName
	Pointer  *[2]float32 `yaml:"pointer,omitempty"` // nil keeps the previous pointer position
	Scroll   float32     `yaml:"scroll"`
	Middle   bool        `yaml:"middle"`

	codes []uint32
}

// Script is a sequence of input steps played back against a fixed screen size.
type Script struct {
	Screen [2]int `yaml:"screen,flow"`
	Loop   bool   `yaml:"loop"`
	Steps  []Step `yaml:"steps"`
}

// ParseScript decodes and validates a YAML script. Key names are case-insensitive.
// A missing screen size defaults to 1280x720 with the pointer at its center.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Script: the validated script
//   - error: a decode error, or every validation problem joined
func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing input script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks a script and resolves its key names, filling in the default screen size
// when none is set. Scripts built in code must pass through it before playback.
//
// Returns:
//   - error: every validation problem joined, or nil
func (s *Script) Validate() error {
	if s.Screen[0] <= 0 || s.Screen[1] <= 0 {
		s.Screen = [2]int{1280, 720}
	}

	var errs []error
	if len(s.Steps) == 0 {
		errs = append(errs, errors.New("script has no steps"))
	}
	for i := range s.Steps {
		step := &s.Steps[i]
		if step.Duration <= 0 {
			errs = append(errs, fmt.Errorf("step %d: duration must be positive, got %g", i, step.Duration))
		}
		step.codes = step.codes[:0]
		for _, name := range step.Keys {
			code, ok := common.KeyByName(strings.ToLower(strings.TrimSpace(name)))
			if !ok {
				errs = append(errs, fmt.Errorf("step %d: unknown key %q", i, name))
				continue
			}
			step.codes = append(step.codes, code)
		}
	}
	return errors.Join(errs...)
}

// LoadScript reads and parses a script file.
//
// Parameters:
//   - path: path to the YAML script
//
// Returns:
//   - *Script: the validated script
//   - error: a read, decode or validation error
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input script: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Duration returns the length of one pass through the script in seconds.
//
// Returns:
//   - float32: the sum of step durations
func (s *Script) Duration() float32 {
	var total float32
	for _, step := range s.Steps {
		total += step.Duration
	}
	return total
}
