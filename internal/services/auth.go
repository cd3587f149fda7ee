package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a bcrypt hash of a random throwaway password. Login compares
// against it when no user row matched, so unknown-username and wrong-password
// attempts take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type SessionClaims struct {
	UserID   string
	Username string
	Role     string
}

// TokenService mints and verifies the stateless session tokens carried in
// the httpOnly cookie. There is no server-side revocation: logout clears the
// cookie, an already-issued token stays valid until its expiry.
type TokenService struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (t TokenService) HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(hash), err
}

func (t TokenService) VerifyPassword(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

// BurnCompare performs a compare against a throwaway hash, discarding the
// result. Called on the login path when the username did not match any row.
func (t TokenService) BurnCompare(raw string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(raw))
}

func (t TokenService) CreateSessionToken(userID, username, role string) (string, int64, error) {
	now := time.Now().UTC()
	exp := now.Add(t.TTL)
	claims := jwt.MapClaims{
		"iss":      t.Issuer,
		"sub":      userID,
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	return signed, exp.Unix(), err
}

func (t TokenService) ParseSessionToken(tokenStr string) (SessionClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return SessionClaims{}, ErrUnauthorized("Invalid or expired token")
	}
	userID, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return SessionClaims{}, ErrUnauthorized("Invalid or expired token")
	}
	return SessionClaims{UserID: userID, Username: username, Role: role}, nil
}
