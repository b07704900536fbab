package intake

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "intake_draft"
	DraftTTL   = 24 * time.Hour
	// MaxCookieBytes keeps the encoded draft under the 4096 byte browser
	// limit once the cookie attributes are added.
	MaxCookieBytes = 4000
)

var (
	ErrInvalidDraft  = errors.New("invalid intake draft")
	ErrDraftTooLarge = errors.New("intake draft too large for a cookie")
)

type draftClaims struct {
	Draft Draft `json:"draft"`
	jwt.RegisteredClaims
}

// DraftCodec keeps the draft client-side in an HMAC-signed cookie.
type DraftCodec struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewDraftCodec(secret string, secure bool) *DraftCodec {
	return &DraftCodec{secret: []byte(secret), ttl: DraftTTL, secure: secure}
}

func (c *DraftCodec) Encode(d *Draft) (string, error) {
	now := time.Now()
	claims := &draftClaims{
		Draft: *d,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign draft: %w", err)
	}
	return signed, nil
}

func (c *DraftCodec) Decode(tokenString string) (*Draft, error) {
	token, err := jwt.ParseWithClaims(tokenString, &draftClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	claims, ok := token.Claims.(*draftClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidDraft
	}

	d := claims.Draft
	if d.Answers == nil {
		d.Answers = map[string]string{}
	}
	d.clampStep()
	return &d, nil
}

// FromRequest returns the draft in the request cookie, or a fresh draft
// when the cookie is missing, tampered with or expired.
func (c *DraftCodec) FromRequest(r *http.Request) *Draft {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return NewDraft()
	}
	d, err := c.Decode(cookie.Value)
	if err != nil {
		return NewDraft()
	}
	return d
}

// Cookie encodes d. It fails with ErrDraftTooLarge rather than hand the
// browser a cookie it would drop.
func (c *DraftCodec) Cookie(d *Draft) (*http.Cookie, error) {
	value, err := c.Encode(d)
	if err != nil {
		return nil, err
	}
	if len(value) > MaxCookieBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrDraftTooLarge, len(value))
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/start-journey",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ClearCookie removes the draft cookie.
func (c *DraftCodec) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/start-journey",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
