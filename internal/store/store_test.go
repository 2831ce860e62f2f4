package store

import (
	"bytes"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"go.etcd.io/bbolt"

	"github.com/campusmaster/campus/pkg/domain"
)

func openTemp(t *testing.T, logger *log.Logger) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	s, err := Open(path, logger)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return s, path
}

func TestTokenRoundTrip(t *testing.T) {
	s, _ := openTemp(t, nil)
	defer s.Close() //nolint:errcheck

	if got := s.GetToken(); got != "" {
		t.Fatalf("GetToken() on fresh store = %q, want empty", got)
	}
	s.SetToken("jwt-abc")
	if got := s.GetToken(); got != "jwt-abc" {
		t.Errorf("GetToken() = %q, want %q", got, "jwt-abc")
	}
	s.RemoveToken()
	if got := s.GetToken(); got != "" {
		t.Errorf("GetToken() after remove = %q, want empty", got)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	s, path := openTemp(t, nil)
	s.SetToken("tok")
	s.SetUser(&domain.User{Email: "a@b.c", FirstName: "Ada", Roles: []domain.Role{{RoleName: domain.RoleTeacher}}})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	s2, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s2.Close() //nolint:errcheck

	if s2.GetToken() != "tok" {
		t.Errorf("token lost across reopen")
	}
	u := s2.GetUser()
	if u == nil || u.Email != "a@b.c" || !u.IsTeacher() {
		t.Errorf("GetUser() = %+v, want teacher a@b.c", u)
	}
}

func TestClearAll(t *testing.T) {
	s, _ := openTemp(t, nil)
	defer s.Close() //nolint:errcheck

	s.SetToken("tok")
	s.SetUser(&domain.User{Email: "a@b.c"})
	s.ClearAll()

	if s.GetToken() != "" || s.GetUser() != nil {
		t.Errorf("ClearAll left token=%q user=%+v", s.GetToken(), s.GetUser())
	}
}

func TestCorruptUserTreatedAsAbsent(t *testing.T) {
	var buf bytes.Buffer
	s, _ := openTemp(t, log.New(&buf, "", 0))
	defer s.Close() //nolint:errcheck

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(UserKey), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	if u := s.GetUser(); u != nil {
		t.Errorf("GetUser() = %+v, want nil for corrupt value", u)
	}
	if !strings.Contains(buf.String(), UserKey) {
		t.Errorf("expected corrupt value to be logged, got %q", buf.String())
	}
}

func TestNoBackend(t *testing.T) {
	tests := []struct {
		name  string
		store func(t *testing.T) *Store
	}{
		{"nil store", func(*testing.T) *Store { return nil }},
		{"empty path", func(t *testing.T) *Store {
			s, err := Open("", nil)
			if err != nil {
				t.Fatalf("Open(\"\") error: %v", err)
			}
			return s
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.store(t)
			s.SetToken("tok")
			s.SetUser(&domain.User{Email: "a@b.c"})
			if s.GetToken() != "" {
				t.Error("GetToken() should be empty without a backend")
			}
			if s.GetUser() != nil {
				t.Error("GetUser() should be nil without a backend")
			}
			s.ClearAll()
			if err := s.Close(); err != nil {
				t.Errorf("Close() error: %v", err)
			}
		})
	}
}
