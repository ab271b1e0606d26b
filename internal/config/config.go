package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/contty/internal/caddyfile"
)

// DefaultCaddyfile is used when neither the config file nor the command line
// names a Caddyfile.
const DefaultCaddyfile = "/caddy/Caddyfile"

// Site is one reverse-proxied hostname.
type Site struct {
	Hostname string `yaml:"hostname"`
	Service  string `yaml:"service"`
	Port     string `yaml:"port"`
	Email    string `yaml:"email"`
}

type Config struct {
	Caddyfile string `yaml:"caddyfile"`
	Email     string `yaml:"email"` // default contact for sites without one
	Sites     []Site `yaml:"sites"`
}

// Load reads a YAML config file and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SiteIndex returns the index of the site for hostname, or -1 if not found.
func (c *Config) SiteIndex(hostname string) int {
	for i, s := range c.Sites {
		if s.Hostname == hostname {
			return i
		}
	}
	return -1
}

// Blocks returns the automatic block configs for every site, in order.
func (c *Config) Blocks() []caddyfile.AutomaticBlockConfig {
	blocks := make([]caddyfile.AutomaticBlockConfig, 0, len(c.Sites))
	for _, s := range c.Sites {
		blocks = append(blocks, s.Block())
	}
	return blocks
}

// Block converts s into the parameters of its automatic block.
func (s Site) Block() caddyfile.AutomaticBlockConfig {
	return caddyfile.AutomaticBlockConfig{
		Hostname: s.Hostname,
		Email:    s.Email,
		Service:  s.Service,
		Port:     caddyfile.Port(s.Port),
	}
}
