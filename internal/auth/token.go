package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultIssuer = "hellosvc"

// TokenErrorKind categorizes why a token failed verification.
type TokenErrorKind int

const (
	TokenMalformed TokenErrorKind = iota
	TokenSignatureInvalid
	TokenExpired
	TokenAlgorithmMismatch
)

func (k TokenErrorKind) String() string {
	switch k {
	case TokenSignatureInvalid:
		return "signature invalid"
	case TokenExpired:
		return "token expired"
	case TokenAlgorithmMismatch:
		return "unexpected signing algorithm"
	default:
		return "token malformed"
	}
}

// TokenError reports a verification failure with its category. The rendered
// message is stable and safe to return to clients.
type TokenError struct {
	Kind   TokenErrorKind
	Detail string
}

func (e *TokenError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("TokenError: %s", e.Kind)
	}
	return fmt.Sprintf("TokenError: %s: %s", e.Kind, e.Detail)
}

// Claims carries the verified token payload. Subject holds the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec signs and verifies compact identity assertions as HS256 JWTs. The
// secret is fixed at construction and shared between issue and verify; it
// must never change while the service is running.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration // zero means issued tokens carry no expiry
	now    func() time.Time
}

// CodecOption configures Codec behavior.
type CodecOption func(*Codec)

// WithTTL makes issued tokens expire after ttl. Verification then rejects
// expired tokens as a distinct failure kind.
func WithTTL(ttl time.Duration) CodecOption {
	return func(c *Codec) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithIssuer overrides the issuer claim.
func WithIssuer(issuer string) CodecOption {
	return func(c *Codec) {
		issuer = strings.TrimSpace(issuer)
		if issuer != "" {
			c.issuer = issuer
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) CodecOption {
	return func(c *Codec) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewCodec constructs a Codec around the shared signing secret.
func NewCodec(secret []byte, opts ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: signing secret is required")
	}
	c := &Codec{
		secret: secret,
		issuer: defaultIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token carrying the user identifier as the subject claim.
func (c *Codec) Issue(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("userID is required")
	}
	now := c.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   c.issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.NewString(),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and claims, pinning HS256 so tokens
// claiming a different or absent algorithm are rejected. Every failure is
// reported as a *TokenError.
func (c *Codec) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &TokenError{Kind: TokenMalformed, Detail: "empty token"}
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, &TokenError{Kind: TokenAlgorithmMismatch, Detail: t.Method.Alg()}
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, categorizeTokenError(err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, &TokenError{Kind: TokenMalformed, Detail: "unexpected claims"}
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, &TokenError{Kind: TokenMalformed, Detail: "subject missing"}
	}
	return claims, nil
}

func categorizeTokenError(err error) *TokenError {
	var te *TokenError
	if errors.As(err, &te) {
		return te
	}
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &TokenError{Kind: TokenSignatureInvalid}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Kind: TokenExpired}
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &TokenError{Kind: TokenMalformed, Detail: "cannot parse token"}
	default:
		return &TokenError{Kind: TokenMalformed, Detail: err.Error()}
	}
}
