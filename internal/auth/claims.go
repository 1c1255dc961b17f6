package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the verified claims of a bearer token.
type Claims struct {
	// Permissions is nil when the token carries no permissions claim.
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// CheckPermissions reports whether claims grant every required permission.
func CheckPermissions(claims *Claims, required ...string) error {
	if claims == nil || claims.Permissions == nil {
		return errNoPermissions
	}

	granted := make(map[string]struct{}, len(claims.Permissions))
	for _, p := range claims.Permissions {
		granted[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := granted[p]; !ok {
			return errMissingGrant
		}
	}
	return nil
}
