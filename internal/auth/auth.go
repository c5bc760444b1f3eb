package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("missing username or password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("session is invalid or expired")
)

// Claims identify a signed-in clinician for the rest of the program.
type Claims struct {
	Hospital string `json:"hospital"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string
	Username  string
	Hospital  string
	ExpiresAt time.Time
}

// Authenticator checks the shared clinic password and issues short-lived
// session tokens that guard the search page.
type Authenticator struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthenticator(password string, ttl time.Duration) (*Authenticator, error) {
	return newAuthenticator(password, ttl, bcrypt.DefaultCost)
}

func newAuthenticator(password string, ttl time.Duration, cost int) (*Authenticator, error) {
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	return &Authenticator{hash: hash, secret: secret, ttl: ttl, now: time.Now}, nil
}

// Login verifies the credentials and returns a session bound to hospital.
func (a *Authenticator) Login(username, password, hospital string) (*Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := a.now()
	exp := now.Add(a.ttl)
	claims := Claims{
		Hospital: hospital,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &Session{Token: token, Username: username, Hospital: hospital, ExpiresAt: exp}, nil
}

// Verify checks a session token's signature and expiry.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return claims, nil
}
