package caddyfile

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// requiredKeys lists the automatic block parameters in the order they are
// checked, so a payload missing several keys always reports the same one.
var requiredKeys = []string{"hostname", "service", "port", "email"}

var configSchema = func() *jsonschema.Resolved {
	minLen := 1
	str := func() *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", MinLength: &minLen}
	}
	s := &jsonschema.Schema{
		Type:     "object",
		Required: requiredKeys,
		Properties: map[string]*jsonschema.Schema{
			"hostname": str(),
			"email":    str(),
			"service":  str(),
			"port":     {Types: []string{"string", "number"}},
		},
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		panic("caddyfile: resolving automatic block schema: " + err.Error())
	}
	return resolved
}()

// decodeConfig parses the JSON payload of an automatic start marker.
func decodeConfig(payload string) (AutomaticBlockConfig, error) {
	var cfg AutomaticBlockConfig
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return cfg, errors.New("missing JSON payload")
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return cfg, err
	}
	if raw == nil {
		return cfg, errors.New("payload is not a JSON object")
	}
	for _, k := range requiredKeys {
		if _, ok := raw[k]; !ok {
			return cfg, &ParamError{Index: -1, Key: k}
		}
	}
	if err := configSchema.Validate(raw); err != nil {
		return cfg, err
	}

	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// encodeConfig renders cfg as a single-line JSON object with ", " and ": "
// separators and a fixed key order.
func encodeConfig(cfg AutomaticBlockConfig) (string, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range []struct {
		key, val string
	}{
		{"hostname", cfg.Hostname},
		{"email", cfg.Email},
		{"service", cfg.Service},
		{"port", string(cfg.Port)},
	} {
		if i > 0 {
			b.WriteString(", ")
		}
		v, err := json.Marshal(f.val)
		if err != nil {
			return "", err
		}
		b.WriteByte('"')
		b.WriteString(f.key)
		b.WriteString(`": `)
		b.Write(v)
	}
	b.WriteByte('}')
	return b.String(), nil
}
