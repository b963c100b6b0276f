package auth

import (
	"strings"
	"time"

	"backend-triage/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Minter produces fresh bearer token strings. The token carries no authority
// by itself; only tokens held by the Authority are accepted.
type Minter interface {
	Mint(staff models.StaffIdentity) (string, error)
}

type RandomMinter struct{}

func (RandomMinter) Mint(models.StaffIdentity) (string, error) {
	return "tk_" + strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

type SessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// JWTMinter signs tokens with HS256 so display boards and logs can read the
// holder without a lookup.
type JWTMinter struct {
	Secret []byte
	Now    func() time.Time
}

func (m JWTMinter) Mint(staff models.StaffIdentity) (string, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	claims := SessionClaims{
		Name: staff.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  staff.Username,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}
	return signed, nil
}

// Parse validates the signature of a token minted by m.
func (m JWTMinter) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
