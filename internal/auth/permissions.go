package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Permissions maps an upper-case role name to the permissions it grants.
// Permission names have the form resource:action, e.g. appointment:create.
type Permissions map[string][]string

// LoadPermissions reads the role table from a YAML file with a top-level roles key
func LoadPermissions(path string) (Permissions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read permissions file: %w", err)
	}

	var doc struct {
		Roles map[string][]string `yaml:"roles"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(doc.Roles) == 0 {
		return nil, errors.New("permissions file defines no roles")
	}

	perms := make(Permissions, len(doc.Roles))
	for role, granted := range doc.Roles {
		for _, p := range granted {
			resource, action, ok := strings.Cut(p, ":")
			if !ok || resource == "" || action == "" {
				return nil, fmt.Errorf("role %s: malformed permission %q", role, p)
			}
		}
		perms[strings.ToUpper(role)] = granted
	}
	return perms, nil
}

// Allows reports whether any of roles grants permission. Roles match case-insensitively.
func (p Permissions) Allows(roles []string, permission string) bool {
	for _, role := range roles {
		for _, granted := range p[strings.ToUpper(role)] {
			if granted == permission {
				return true
			}
		}
	}
	return false
}
