package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Credential is one pre-provisioned staff account.
type Credential struct {
	Username string
	Password string // plaintext or bcrypt hash, depending on the Verifier
	Name     string
}

// Verifier checks a submitted password against a stored credential.
type Verifier interface {
	Verify(stored Credential, password string) bool
}

// PlainVerifier compares passwords verbatim.
type PlainVerifier struct{}

func (PlainVerifier) Verify(stored Credential, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored.Password), []byte(password)) == 1
}

// BcryptVerifier expects Credential.Password to hold a bcrypt hash.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored Credential, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(password)) == nil
}

// ParseCredentials reads "user:password:Display Name" entries separated by commas.
// The display name defaults to the username.
func ParseCredentials(raw string) ([]Credential, error) {
	var out []Credential
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, errors.Errorf("malformed staff entry %q", entry)
		}
		c := Credential{Username: parts[0], Password: parts[1], Name: parts[0]}
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			c.Name = strings.TrimSpace(parts[2])
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, errors.New("no staff credentials configured")
	}
	return out, nil
}
