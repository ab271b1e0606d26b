package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hostnameRe = regexp.MustCompile(`^(\*\.)?[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)*$`)
	serviceRe  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.Caddyfile == "" {
		cfg.Caddyfile = DefaultCaddyfile
	}
	if cfg.Email != "" {
		if err := ValidateEmail(cfg.Email); err != nil {
			return fmt.Errorf("config: 'email': %w", err)
		}
	}

	seen := make(map[string]bool)
	for i := range cfg.Sites {
		s := &cfg.Sites[i]

		if s.Hostname == "" {
			return fmt.Errorf("config: site %d: 'hostname' is required", i+1)
		}
		if seen[s.Hostname] {
			return fmt.Errorf("config: duplicate site hostname %q", s.Hostname)
		}
		seen[s.Hostname] = true

		if s.Email == "" {
			s.Email = cfg.Email
		}
		if err := ValidateSite(*s); err != nil {
			return fmt.Errorf("config: site %q: %w", s.Hostname, err)
		}
	}
	return nil
}

// ValidateSite checks a single site with defaults already applied.
func ValidateSite(s Site) error {
	if !hostnameRe.MatchString(s.Hostname) {
		return fmt.Errorf("invalid hostname %q", s.Hostname)
	}
	if s.Service == "" {
		return fmt.Errorf("'service' is required")
	}
	if !serviceRe.MatchString(s.Service) {
		return fmt.Errorf("invalid service %q", s.Service)
	}
	if s.Port == "" {
		return fmt.Errorf("'port' is required")
	}
	if err := ValidatePort(s.Port); err != nil {
		return err
	}
	if s.Email == "" {
		return fmt.Errorf("'email' is required (set it on the site or at the top level)")
	}
	return ValidateEmail(s.Email)
}

// ValidatePort checks that port is a TCP port number.
func ValidatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port %q must be a number between 1 and 65535", port)
	}
	return nil
}

// ValidateEmail does a shallow check of a contact address.
func ValidateEmail(email string) error {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || strings.ContainsAny(email, " \t{}") {
		return fmt.Errorf("invalid email %q", email)
	}
	return nil
}
