package domain

import "encoding/json"

// Identity is the claim set extracted from an already-verified bearer token.
// The server never validates signatures itself; a verifier in front of the
// handlers produced these values.
type Identity struct {
	Sub               string   `json:"sub"`
	PreferredUsername string   `json:"preferred_username"`
	Email             string   `json:"email"`
	Name              string   `json:"name"`
	Roles             []string `json:"roles"`
	Authorities       []string `json:"authorities"`
}

// TokenClaims mirrors the raw JWT payload the identity provider issues.
// Realm roles live under realm_access.roles (Keycloak layout); the claim is
// kept raw so a missing or malformed value degrades to an empty role list
// instead of failing verification.
type TokenClaims struct {
	Sub               string          `json:"sub"`
	PreferredUsername string          `json:"preferred_username"`
	Email             string          `json:"email"`
	Name              string          `json:"name"`
	RealmAccess       json.RawMessage `json:"realm_access"`
}

// Identity converts raw claims into the application-level identity.
// Authorities carry the ROLE_ prefix, one per realm role.
func (c *TokenClaims) Identity() *Identity {
	roles := []string{}
	if len(c.RealmAccess) > 0 {
		var realm struct {
			Roles []string `json:"roles"`
		}
		if err := json.Unmarshal(c.RealmAccess, &realm); err == nil && realm.Roles != nil {
			roles = realm.Roles
		}
	}

	authorities := make([]string, 0, len(roles))
	for _, r := range roles {
		authorities = append(authorities, "ROLE_"+r)
	}

	return &Identity{
		Sub:               c.Sub,
		PreferredUsername: c.PreferredUsername,
		Email:             c.Email,
		Name:              c.Name,
		Roles:             roles,
		Authorities:       authorities,
	}
}
