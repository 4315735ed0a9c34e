package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestUserStore() *UserStore {
	s := NewUserStore()
	s.cost = bcrypt.MinCost
	return s
}

func TestUserStore_RegisterAuthenticate(t *testing.T) {
	s := newTestUserStore()

	u, err := s.Register(" Staff@Clinic.Test ", "s3cret", " Hana ")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "staff@clinic.test" || u.Name != "Hana" {
		t.Errorf("unexpected user %+v", u)
	}
	if u.IsAdmin() || !containsRole(u.Roles, RoleStaff) {
		t.Errorf("new accounts should be staff only, got %v", u.Roles)
	}

	got, err := s.Authenticate("STAFF@clinic.test", "s3cret")
	if err != nil || got.ID != u.ID {
		t.Fatalf("Authenticate: %+v %v", got, err)
	}
	if _, err := s.Authenticate("staff@clinic.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Authenticate("nobody@clinic.test", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUserStore_RegisterDuplicate(t *testing.T) {
	s := newTestUserStore()
	if _, err := s.Register("a@b.c", "pw", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register("A@B.C", "pw2", ""); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
	if _, err := s.Register("", "pw", ""); err == nil {
		t.Error("expected error for missing email")
	}
}

func TestUserStore_SeedAdmin(t *testing.T) {
	s := newTestUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	admin, err := s.SeedAdmin("Admin@Clinic.Test", hash)
	if err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	if !admin.IsAdmin() {
		t.Error("seeded account should be admin")
	}
	if _, err := s.Authenticate("admin@clinic.test", "admin-pw"); err != nil {
		t.Errorf("admin should authenticate: %v", err)
	}
	if _, ok := s.GetByEmail("admin@clinic.test"); !ok {
		t.Error("GetByEmail should find the admin")
	}

	if _, err := s.SeedAdmin("x@y.z", []byte("plaintext")); err == nil {
		t.Error("expected error for a non-bcrypt hash")
	}
}

func TestIssuer_IssueAndParse(t *testing.T) {
	cfg := testConfig()
	issuer := NewIssuer(cfg, 24*time.Hour)
	fixed := time.Now().Truncate(time.Second)
	issuer.now = func() time.Time { return fixed }

	u := &User{ID: "u-1", Email: "staff@clinic.test", Roles: []string{RoleStaff}}
	token, exp, err := issuer.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !exp.Equal(fixed.Add(24 * time.Hour)) {
		t.Errorf("unexpected expiry %v", exp)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "u-1" || claims.Email != u.Email || claims.Issuer != cfg.Issuer {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}

	other, _, _ := issuer.Issue(u)
	otherClaims, _ := ParseToken(cfg, other)
	if otherClaims.ID == claims.ID {
		t.Error("token ids must be unique per issue")
	}
}
