package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// User is the identity derived from a token payload.
type User struct {
	Email string
}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeUser reads the e-mail claim from the payload segment of token.
// The signature is not checked. A payload that decodes but has no e-mail
// claim yields a User with an empty Email.
func DecodeUser(token string) (*User, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrDecode, len(parts))
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload segment: %v", ErrDecode, err)
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload json: %v", ErrDecode, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is null", ErrDecode)
	}

	email, _ := claims["email"].(string)
	return &User{Email: email}, nil
}
