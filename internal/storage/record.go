package storage

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"fitbuddy/internal/core/model"
)

// record is the stored form of a preference record. Every field is optional
// so files written by older versions, or edited by hand, merge onto defaults.
type record struct {
	GlobalEnabled *bool                    `yaml:"global_enabled,omitempty" json:"globalEnabled,omitempty"`
	AutoAdvance   *bool                    `yaml:"auto_advance,omitempty" json:"autoAdvance,omitempty"`
	AlertMode     *string                  `yaml:"alert_mode,omitempty" json:"alertMode,omitempty"`
	Sections      map[string]sectionRecord `yaml:"sections,omitempty" json:"sections,omitempty"`
}

type sectionRecord struct {
	Enabled        *bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	DefaultSeconds *int    `yaml:"default_seconds,omitempty" json:"defaultSeconds,omitempty"`
	Mode           *string `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// Codec converts records to and from bytes.
type Codec interface {
	Name() string
	marshal(record) ([]byte, error)
	unmarshal([]byte, *record) error
}

// YAMLCodec writes human-editable records.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) marshal(value record) ([]byte, error) {
	serialized, err := yaml.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences yaml: %w", err)
	}
	return serialized, nil
}

func (YAMLCodec) unmarshal(data []byte, value *record) error {
	if err := yaml.Unmarshal(data, value); err != nil {
		return fmt.Errorf("parse preferences yaml: %w", err)
	}
	return nil
}

// JSONCodec writes compact records.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) marshal(value record) ([]byte, error) {
	serialized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences json: %w", err)
	}
	return serialized, nil
}

func (JSONCodec) unmarshal(data []byte, value *record) error {
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("parse preferences json: %w", err)
	}
	return nil
}

func recordFromConfig(config model.TimerConfig) record {
	config = config.Normalized()
	alertMode := string(config.AlertMode)
	value := record{
		GlobalEnabled: &config.GlobalEnabled,
		AutoAdvance:   &config.AutoAdvance,
		AlertMode:     &alertMode,
		Sections:      make(map[string]sectionRecord, len(config.Sections)),
	}
	for _, id := range model.SectionIDs {
		section := config.Sections[id]
		mode := string(section.Mode)
		value.Sections[string(id)] = sectionRecord{
			Enabled:        &section.Enabled,
			DefaultSeconds: &section.DefaultSeconds,
			Mode:           &mode,
		}
	}
	return value
}

// applyRecord merges a stored record onto config. Unknown sections and
// invalid modes are ignored; seconds are clamped.
func applyRecord(config *model.TimerConfig, value record) {
	if value.GlobalEnabled != nil {
		config.GlobalEnabled = *value.GlobalEnabled
	}
	if value.AutoAdvance != nil {
		config.AutoAdvance = *value.AutoAdvance
	}
	if value.AlertMode != nil {
		if mode := model.AlertMode(*value.AlertMode); mode.Valid() {
			config.AlertMode = mode
		}
	}

	for name, stored := range value.Sections {
		id := model.SectionID(name)
		section, ok := config.Sections[id]
		if !ok {
			continue
		}
		if stored.Enabled != nil {
			section.Enabled = *stored.Enabled
		}
		if stored.DefaultSeconds != nil {
			section.DefaultSeconds = model.ClampTarget(*stored.DefaultSeconds)
		}
		if stored.Mode != nil {
			if mode := model.TimerMode(*stored.Mode); mode.Valid() {
				section.Mode = mode
			}
		}
		config.Sections[id] = section
	}
}

// MarshalConfig encodes config the way the store writes it.
func MarshalConfig(codec Codec, config model.TimerConfig) ([]byte, error) {
	if codec == nil {
		codec = YAMLCodec{}
	}
	return codec.marshal(recordFromConfig(config))
}
