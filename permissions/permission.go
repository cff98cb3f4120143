package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission guards one chi route pattern. Role names a group from PermissionData.Roles; Get resolves it into Permissions.
type Permission struct {
	Permissions []string `json:"permissions"`
	Role        string   `json:"role"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Roles     map[string][]string `json:"roles"`
	Endpoints []Permission        `json:"endpoints"`
	Skip      bool                `json:"skip"`

	index map[string]int
}

func key(method, path string) string {
	return method + " " + path
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index != nil {
		if idx, ok := r.index[key(method, path)]; ok {
			return r.Endpoints[idx]
		}

		return Permission{}
	}

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Resolve expands role groups and indexes endpoints by method and path.
func (r *PermissionData) Resolve() error {
	r.index = make(map[string]int, len(r.Endpoints))

	for i := range r.Endpoints {
		endpoint := &r.Endpoints[i]

		k := key(endpoint.Method, endpoint.Path)
		if _, ok := r.index[k]; ok {
			return fmt.Errorf("duplicate permission for %s", k)
		}

		r.index[k] = i

		if endpoint.Role == "" {
			continue
		}

		roles, ok := r.Roles[endpoint.Role]
		if !ok {
			return fmt.Errorf("unknown role group %q for %s", endpoint.Role, k)
		}

		endpoint.Permissions = append(slices.Clone(roles), endpoint.Permissions...)
	}

	return nil
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	if err = permissions.Resolve(); err != nil {
		log.Err(err).Msg("Invalid embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Int("roles", len(permissions.Roles)).
		Msg("Successfully loaded embedded permissions")

	return &permissions
}
