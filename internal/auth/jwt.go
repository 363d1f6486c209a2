// File: internal/auth/jwt.go
package auth

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// AdminRole is the value of the "role" claim that grants access to admin routes.
const AdminRole = "admin"

var ErrInvalidToken = errors.New("invalid token")

// GenerateAdminJWT issues an HS256 token for an operator. Admin tokens are normally
// minted by the site's identity provider; this is used by tooling and tests.
func GenerateAdminJWT(subject string, secretKey []byte, ttl time.Duration) (string, error) {
    if subject == "" {
        return "", errors.New("subject cannot be empty")
    }

    now := time.Now()
    claims := jwt.MapClaims{
        "sub":  subject,
        "role": AdminRole,
        "iat":  now.Unix(),
        "exp":  now.Add(ttl).Unix(),
    }

    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return token.SignedString(secretKey)
}

// ValidateAdminToken checks the signature and expiry and requires role=admin.
// It returns the token subject.
func ValidateAdminToken(tokenString string, secretKey []byte) (string, error) {
    token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
        if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, errors.New("unexpected signing method")
        }
        return secretKey, nil
    })
    if err != nil {
        return "", err
    }

    claims, ok := token.Claims.(jwt.MapClaims)
    if !ok || !token.Valid {
        return "", ErrInvalidToken
    }
    if role, _ := claims["role"].(string); role != AdminRole {
        return "", ErrInvalidToken
    }
    sub, err := claims.GetSubject()
    if err != nil || sub == "" {
        return "", ErrInvalidToken
    }
    return sub, nil
}
