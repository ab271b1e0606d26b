// Package caddyfile reads and writes Caddyfiles that mix hand-written
// configuration with marker-delimited blocks.
//
// A file may contain three kinds of content:
//
//	https://example.com {        <- unmanaged, kept as-is
//	    ...
//	}
//
//	# CONTTY STARTBLOCK MANUAL   <- manual block, content kept verbatim
//	...
//	# CONTTY ENDBLOCK
//
//	# CONTTY STARTBLOCK AUTOMATIC {"hostname": "example.com", "email": "a@example.com", "service": "example", "port": "80"}
//	...                          <- automatic block, body regenerated
//	# CONTTY ENDBLOCK
//
// Parsing regroups content by kind. [Build] always writes unmanaged lines
// first, then manual blocks, then automatic blocks, so the original
// interleaving between kinds is not preserved. Blocks of the same kind keep
// their relative order.
package caddyfile

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Document is a parsed Caddyfile.
type Document struct {
	Unmanaged []string
	Manual    []ManualBlock
	Automatic []AutomaticBlockConfig
}

// ManualBlock holds the lines between a manual start marker and its end
// marker.
type ManualBlock struct {
	Lines []string
}

// AutomaticBlockConfig holds the parameters an automatic block is generated
// from. The same values are stored as JSON in the block's start marker.
type AutomaticBlockConfig struct {
	Hostname string `json:"hostname"`
	Email    string `json:"email"`
	Service  string `json:"service"`
	Port     Port   `json:"port"`
}

// Port is a backend port. It decodes from a JSON string or integer and
// always encodes as a string.
type Port string

// PortNumber returns p for a numeric port.
func PortNumber(n int) Port {
	return Port(strconv.Itoa(n))
}

func (p Port) String() string { return string(p) }

// UnmarshalJSON implements json.Unmarshaler.
func (p *Port) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Port(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("port must be a string or integer, got %s", data)
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("port must be a string or integer, got %s", data)
	}
	*p = Port(n.String())
	return nil
}

// Validate reports the first missing parameter.
func (c AutomaticBlockConfig) Validate() error {
	for _, f := range []struct {
		key, val string
	}{
		{"hostname", c.Hostname},
		{"service", c.Service},
		{"port", string(c.Port)},
		{"email", c.Email},
	} {
		if f.val == "" {
			return &ParamError{Index: -1, Key: f.key}
		}
	}
	return nil
}

// AddManualBlock appends a manual block holding lines.
func (d *Document) AddManualBlock(lines ...string) {
	d.Manual = append(d.Manual, ManualBlock{Lines: append([]string(nil), lines...)})
}

// AddAutomaticBlock appends cfg.
func (d *Document) AddAutomaticBlock(cfg AutomaticBlockConfig) {
	d.Automatic = append(d.Automatic, cfg)
}

// AddAutomaticBlockJSON decodes payload the same way a start marker is
// decoded and appends the result.
func (d *Document) AddAutomaticBlockJSON(payload string) error {
	cfg, err := decodeConfig(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	d.AddAutomaticBlock(cfg)
	return nil
}

// SetAutomaticBlock replaces the block with the same hostname in place, or
// appends cfg when there is none.
func (d *Document) SetAutomaticBlock(cfg AutomaticBlockConfig) (replaced bool) {
	for i := range d.Automatic {
		if d.Automatic[i].Hostname == cfg.Hostname {
			d.Automatic[i] = cfg
			return true
		}
	}
	d.AddAutomaticBlock(cfg)
	return false
}

// RemoveAutomaticBlock deletes every block for hostname.
func (d *Document) RemoveAutomaticBlock(hostname string) bool {
	kept := d.Automatic[:0]
	for _, c := range d.Automatic {
		if c.Hostname != hostname {
			kept = append(kept, c)
		}
	}
	removed := len(kept) != len(d.Automatic)
	d.Automatic = kept
	return removed
}

// AutomaticBlock returns the config for hostname.
func (d *Document) AutomaticBlock(hostname string) (AutomaticBlockConfig, bool) {
	for _, c := range d.Automatic {
		if c.Hostname == hostname {
			return c, true
		}
	}
	return AutomaticBlockConfig{}, false
}

// Hostnames returns the hostnames of the automatic blocks in order.
func (d *Document) Hostnames() []string {
	names := make([]string, 0, len(d.Automatic))
	for _, c := range d.Automatic {
		names = append(names, c.Hostname)
	}
	return names
}
