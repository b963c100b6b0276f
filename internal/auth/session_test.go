package auth

import (
	"strings"
	"sync"
	"testing"
	"time"

	"backend-triage/internal/models"

	"github.com/pkg/errors"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"
)

var defaultCreds = []Credential{
	{Username: "staff", Password: "staff123", Name: "Staff User"},
	{Username: "admin", Password: "admin123", Name: "Admin"},
}

func newTestAuthority(opts Options) (*Authority, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	return NewAuthority(defaultCreds, logger, opts), hook
}

func TestLogin(t *testing.T) {
	a, hook := newTestAuthority(Options{})

	token, staff, err := a.Login("staff", "staff123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.HasPrefix(token, "tk_") {
		t.Fatalf("token %q missing prefix", token)
	}
	if staff != (models.StaffIdentity{Username: "staff", Name: "Staff User"}) {
		t.Fatalf("staff = %+v", staff)
	}

	cases := []struct{ user, pass string }{
		{"staff", "wrong"},
		{"nobody", "staff123"},
		{"staff", ""},
		{"", ""},
		{"admin", "staff123"},
	}
	for _, tt := range cases {
		if _, _, err := a.Login(tt.user, tt.pass); err != ErrAuthentication {
			t.Fatalf("Login(%q, %q) err = %v, want ErrAuthentication", tt.user, tt.pass, err)
		}
	}

	for _, e := range hook.AllEntries() {
		for _, v := range e.Data {
			if v == "wrong" || v == "staff123" {
				t.Fatalf("password leaked into logs: %+v", e.Data)
			}
		}
	}
}

func TestLoginMintsDistinctSessions(t *testing.T) {
	a, _ := newTestAuthority(Options{})

	t1, _, _ := a.Login("staff", "staff123")
	t2, _, _ := a.Login("staff", "staff123")
	if t1 == t2 {
		t.Fatalf("two logins returned the same token")
	}
	for _, tok := range []string{t1, t2} {
		if _, err := a.Authenticate(tok); err != nil {
			t.Fatalf("authenticate %s: %v", tok, err)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	a, _ := newTestAuthority(Options{})
	token, _, _ := a.Login("admin", "admin123")

	staff, err := a.Authenticate(token)
	if err != nil || staff.Username != "admin" || staff.Name != "Admin" {
		t.Fatalf("authenticate: staff=%+v err=%v", staff, err)
	}

	for _, bad := range []string{"", "tk_unknown", token + "x"} {
		if _, err := a.Authenticate(bad); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("Authenticate(%q) err = %v", bad, err)
		}
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	a, _ := newTestAuthority(Options{})
	token, _, _ := a.Login("staff", "staff123")
	other, _, _ := a.Login("admin", "admin123")

	a.Logout(token)
	a.Logout(token)
	a.Logout("")
	a.Logout("tk_never_issued")

	if _, err := a.Authenticate(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("revoked token still valid: %v", err)
	}
	if _, err := a.Authenticate(other); err != nil {
		t.Fatalf("logout revoked an unrelated session: %v", err)
	}
}

func TestConcurrentLoginLogout(t *testing.T) {
	a, _ := newTestAuthority(Options{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, _, err := a.Login("staff", "staff123")
			if err != nil {
				t.Errorf("login: %v", err)
				return
			}
			if _, err := a.Authenticate(token); err != nil {
				t.Errorf("session not visible after login: %v", err)
			}
			a.Logout(token)
		}()
	}
	wg.Wait()
}

type countingVerifier struct {
	mu    sync.Mutex
	calls []Credential
}

func (v *countingVerifier) Verify(stored Credential, password string) bool {
	v.mu.Lock()
	v.calls = append(v.calls, stored)
	v.mu.Unlock()
	return PlainVerifier{}.Verify(stored, password)
}

func TestLoginVerifiesUnknownUsernames(t *testing.T) {
	v := &countingVerifier{}
	a, _ := newTestAuthority(Options{Verifier: v})

	for _, user := range []string{"staff", "nobody", ""} {
		v.calls = nil
		a.Login(user, "staff123x")
		if len(v.calls) != 1 {
			t.Fatalf("Login(%q) ran the verifier %d times, want 1", user, len(v.calls))
		}
		if v.calls[0].Password == "" {
			t.Fatalf("Login(%q) verified against an empty credential", user)
		}
	}

	// The decoy holds a real password, which must not open an unknown account.
	if _, _, err := a.Login("nobody", "staff123"); err != ErrAuthentication {
		t.Fatalf("unknown user with the decoy password: err = %v", err)
	}
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	logger, _ := logtest.NewNullLogger()
	a := NewAuthority([]Credential{{Username: "nurse", Password: string(hash), Name: "Nurse"}}, logger, Options{Verifier: BcryptVerifier{}})

	if _, _, err := a.Login("nurse", "s3cret"); err != nil {
		t.Fatalf("bcrypt login: %v", err)
	}
	if _, _, err := a.Login("nurse", string(hash)); err != ErrAuthentication {
		t.Fatalf("hash must not be accepted as password, err = %v", err)
	}
}

func TestJWTMinterSessions(t *testing.T) {
	issued := time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC)
	minter := JWTMinter{Secret: []byte("test-secret"), Now: func() time.Time { return issued }}
	a, _ := newTestAuthority(Options{Minter: minter})

	token, _, err := a.Login("staff", "staff123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := minter.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "staff" || claims.Name != "Staff User" || claims.ID == "" {
		t.Fatalf("claims = %+v", claims)
	}

	forged, _ := JWTMinter{Secret: []byte("other")}.Mint(models.StaffIdentity{Username: "staff"})
	if _, err := a.Authenticate(forged); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("forged token accepted: %v", err)
	}

	a.Logout(token)
	if _, err := a.Authenticate(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("validly signed but revoked token accepted: %v", err)
	}
}

func TestParseCredentials(t *testing.T) {
	creds, err := ParseCredentials(" staff:staff123:Staff User , admin:admin123 ,")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Credential{
		{Username: "staff", Password: "staff123", Name: "Staff User"},
		{Username: "admin", Password: "admin123", Name: "admin"},
	}
	if len(creds) != len(want) {
		t.Fatalf("creds = %+v", creds)
	}
	for i := range want {
		if creds[i] != want[i] {
			t.Fatalf("cred %d = %+v, want %+v", i, creds[i], want[i])
		}
	}

	for _, bad := range []string{"", "staff", "staff:", ":pass"} {
		if _, err := ParseCredentials(bad); err == nil {
			t.Fatalf("ParseCredentials(%q) should fail", bad)
		}
	}
}
