package exclusion

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var ErrInvalid = errors.New("invalid exclusion cookie")

// Codec signs the exclusion list into a cookie so the storefront cannot be
// tricked into auto-adding an opted-out variant by a forged value.
type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func NewCodec(secret []byte, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: StorageKey, Secure: secure}
}

// value format: base64(json list).base64(hmac)
func (c *Codec) Encode(variants []int64) (string, error) {
	if variants == nil {
		variants = []int64{}
	}
	b, err := json.Marshal(variants)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) ([]int64, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return nil, ErrInvalid
	}
	payload, sig := parts[0], parts[1]
	if !verify(c.Secret, payload, sig) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var variants []int64
	if err := json.Unmarshal(raw, &variants); err != nil {
		return nil, ErrInvalid
	}
	return variants, nil
}

func (c *Codec) Get(ctx *gin.Context) []int64 {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return []int64{}
	}
	variants, err := c.Decode(v)
	if err != nil {
		// tampered or stale format: drop it and start clean
		c.Clear(ctx)
		return []int64{}
	}
	return variants
}

func (c *Codec) Set(ctx *gin.Context, variants []int64) error {
	val, err := c.Encode(variants)
	if err != nil {
		return err
	}
	// opt-outs never expire; a year is the practical ceiling for cookies
	maxAge := int((365 * 24 * time.Hour).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, val, maxAge, "/", "", c.Secure, true)
	return nil
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

// Bind returns a Store view of the codec scoped to one request.
func (c *Codec) Bind(ctx *gin.Context) Store {
	return &cookieStore{codec: c, gctx: ctx}
}

type cookieStore struct {
	codec *Codec
	gctx  *gin.Context
}

func (s *cookieStore) Load(_ context.Context) ([]int64, error) {
	return s.codec.Get(s.gctx), nil
}

func (s *cookieStore) Save(_ context.Context, variants []int64) error {
	return s.codec.Set(s.gctx, variants)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
