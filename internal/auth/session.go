package auth

import (
	"sync"

	"backend-triage/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrAuthentication = errors.New("invalid credentials")
	ErrUnauthorized   = errors.New("unauthorized")
)

type Options struct {
	Verifier Verifier
	Minter   Minter
}

// Authority checks staff credentials and keeps the map of live bearer sessions.
// Sessions never expire; they live until Logout or process exit.
type Authority struct {
	credentials map[string]Credential
	decoy       Credential
	verifier    Verifier
	minter      Minter
	logger      logrus.FieldLogger

	mu       sync.RWMutex
	sessions map[string]models.StaffIdentity
}

func NewAuthority(creds []Credential, logger logrus.FieldLogger, opts Options) *Authority {
	byName := make(map[string]Credential, len(creds))
	for _, c := range creds {
		byName[c.Username] = c
	}
	// Unknown usernames are verified against a real credential so a bcrypt
	// setup costs the same whether or not the account exists.
	var decoy Credential
	if len(creds) > 0 {
		decoy = Credential{Password: creds[0].Password}
	}
	if opts.Verifier == nil {
		opts.Verifier = PlainVerifier{}
	}
	if opts.Minter == nil {
		opts.Minter = RandomMinter{}
	}
	return &Authority{
		credentials: byName,
		decoy:       decoy,
		verifier:    opts.Verifier,
		minter:      opts.Minter,
		logger:      logger,
		sessions:    make(map[string]models.StaffIdentity),
	}
}

func (a *Authority) Login(username, password string) (string, models.StaffIdentity, error) {
	cred, known := a.credentials[username]
	if !known {
		cred = a.decoy
	}
	valid := a.verifier.Verify(cred, password)
	if !known || password == "" || !valid {
		a.logger.WithField("username", username).Info("staff login rejected")
		return "", models.StaffIdentity{}, ErrAuthentication
	}

	staff := models.StaffIdentity{Username: cred.Username, Name: cred.Name}
	token, err := a.minter.Mint(staff)
	if err != nil {
		return "", models.StaffIdentity{}, errors.Wrap(err, "mint session")
	}

	a.mu.Lock()
	a.sessions[token] = staff
	a.mu.Unlock()

	a.logger.WithField("username", staff.Username).Info("staff logged in")
	return token, staff, nil
}

func (a *Authority) Authenticate(bearerToken string) (models.StaffIdentity, error) {
	if bearerToken == "" {
		return models.StaffIdentity{}, ErrUnauthorized
	}
	if p, ok := a.minter.(interface {
		Parse(string) (*SessionClaims, error)
	}); ok {
		if _, err := p.Parse(bearerToken); err != nil {
			return models.StaffIdentity{}, ErrUnauthorized
		}
	}

	a.mu.RLock()
	staff, ok := a.sessions[bearerToken]
	a.mu.RUnlock()

	if !ok {
		return models.StaffIdentity{}, ErrUnauthorized
	}
	return staff, nil
}

// Logout revokes bearerToken. Unknown or empty tokens are ignored.
func (a *Authority) Logout(bearerToken string) {
	if bearerToken == "" {
		return
	}

	a.mu.Lock()
	staff, ok := a.sessions[bearerToken]
	delete(a.sessions, bearerToken)
	a.mu.Unlock()

	if ok {
		a.logger.WithField("username", staff.Username).Info("staff logged out")
	}
}
