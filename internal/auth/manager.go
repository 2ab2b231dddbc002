package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired session token")
	ErrRevokedToken       = errors.New("session has been logged out")
)

const issuer = "streamstore"

type Options struct {
	Username     string
	Password     string
	PasswordHash string // bcrypt; wins over Password
	Secret       string
	TTL          time.Duration
}

// Session is an authenticated admin session.
type Session struct {
	ID        string    `json:"-"`
	Token     string    `json:"token,omitempty"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager checks the admin credential and issues signed session tokens.
type Manager struct {
	username string
	hash     []byte
	secret   []byte
	ttl      time.Duration
	revoked  *RevocationStore
	now      func() time.Time
}

// NewManager builds a Manager. When no password is configured a random one is
// generated and returned so the caller can report it; otherwise the returned
// string is empty. revoked may be nil, in which case logout is a no-op.
func NewManager(opts Options, revoked *RevocationStore) (*Manager, string, error) {
	m := &Manager{
		username: strings.TrimSpace(opts.Username),
		secret:   []byte(opts.Secret),
		ttl:      opts.TTL,
		revoked:  revoked,
		now:      time.Now,
	}
	if m.username == "" {
		return nil, "", errors.New("admin username is required")
	}
	if m.ttl <= 0 {
		m.ttl = 12 * time.Hour
	}
	if len(m.secret) == 0 {
		m.secret = []byte(random.String(48))
	}

	var generated string
	switch {
	case opts.PasswordHash != "":
		if _, err := bcrypt.Cost([]byte(opts.PasswordHash)); err != nil {
			return nil, "", errors.Wrap(err, "admin password hash is not a bcrypt hash")
		}
		m.hash = []byte(opts.PasswordHash)
	default:
		password := opts.Password
		if password == "" {
			generated = random.String(16, random.Alphanumeric)
			password = generated
		}
		hash, err := HashPassword(password)
		if err != nil {
			return nil, "", err
		}
		m.hash = []byte(hash)
	}
	return m, generated, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// Login verifies the credential pair and returns a new session.
func (m *Manager) Login(username, password string) (*Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(m.username)) == 1
	// always pay for the bcrypt comparison
	passErr := bcrypt.CompareHashAndPassword(m.hash, []byte(password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}
	return m.issue()
}

func (m *Manager) issue() (*Session, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   m.username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, errors.Wrap(err, "sign session token")
	}
	return &Session{
		ID:        claims.ID,
		Token:     token,
		Username:  m.username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify parses a token, checks signature, expiry and revocation.
func (m *Manager) Verify(token string) (*Session, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	now := m.now()
	if claims.ExpiresAt == nil || !claims.VerifyExpiresAt(now, true) {
		return nil, ErrInvalidToken
	}
	if claims.Subject != m.username || claims.ID == "" || !claims.VerifyIssuer(issuer, true) {
		return nil, ErrInvalidToken
	}
	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(claims.ID)
		if err != nil {
			return nil, errors.Wrap(err, "check revocation")
		}
		if revoked {
			return nil, ErrRevokedToken
		}
	}
	return &Session{ID: claims.ID, Username: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Logout revokes the session until its natural expiry.
func (m *Manager) Logout(s *Session) error {
	if s == nil || m.revoked == nil {
		return nil
	}
	return m.revoked.Revoke(s.ID, s.ExpiresAt)
}

// PruneRevoked drops revocation entries that have expired.
func (m *Manager) PruneRevoked() (int, error) {
	if m.revoked == nil {
		return 0, nil
	}
	return m.revoked.Prune(m.now())
}
