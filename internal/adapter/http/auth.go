package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the bearer token claims. The subject is the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 tokens.
type JWTVerifier struct {
	secretKey []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secretKey: []byte(secret)}
}

func (v *JWTVerifier) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("invalid token claims: missing subject")
	}
	return claims, nil
}

// IssueToken signs a token for userID. Used by tests and the render CLI.
func (v *JWTVerifier) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secretKey)
}

const (
	localUserID = "userID"
	localToken  = "token"
)

// bearerToken reads the Authorization header, falling back to the token
// cookie.
func bearerToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if strings.HasPrefix(h, "Bearer ") {
			return strings.TrimSpace(h[7:])
		}
		return strings.TrimSpace(h)
	}
	return c.Cookies("token")
}

// RequireAuth rejects requests without a valid token and stores the user id
// and raw token in the request locals. Both are copied out of the request
// buffer since sessions keep them after the handler returns.
func (h *Handler) RequireAuth(c *fiber.Ctx) error {
	tok := bearerToken(c)
	if tok == "" {
		return fail(c, fiber.StatusUnauthorized, "missing authorization token")
	}
	claims, err := h.verifier.VerifyToken(tok)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, err.Error())
	}
	c.Locals(localUserID, strings.Clone(claims.Subject))
	c.Locals(localToken, strings.Clone(tok))
	return c.Next()
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

func requestToken(c *fiber.Ctx) string {
	tok, _ := c.Locals(localToken).(string)
	return tok
}
