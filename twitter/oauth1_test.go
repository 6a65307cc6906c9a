package twitter

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentEncode(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]string{
		"Ladies + Gentlemen": "Ladies%20%2B%20Gentlemen",
		"An encoded string!": "An%20encoded%20string%21",
		"Dogs, Cats & Mice":  "Dogs%2C%20Cats%20%26%20Mice",
		"☃":                  "%E2%98%83",
		"safe-._~AZaz09":     "safe-._~AZaz09",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(want, percentEncode(in))
	}
}

// The platform's documented signing example, byte for byte.
func TestSignatureReferenceVector(t *testing.T) {
	assert := assert.New(t)

	auth := &UserAuth{
		ConsumerKey:    "xvz1evFS4wEEPTGEFPHBog",
		ConsumerSecret: "kAcSOqF21Fu85e7zjz7ZN2U4ZRhfV3WpwPAoE3Z7kBw",
		AccessToken:    "370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb",
		AccessSecret:   "LswwdoUaIvS8ltyTt5jkRh4J50vUPVVHtR2YPi5kE",
	}

	query := url.Values{}
	query.Set("include_entities", "true")
	query.Set("status", "Hello Ladies + Gentlemen, a signed OAuth request!")

	oauth := map[string]string{
		"oauth_consumer_key":     auth.ConsumerKey,
		"oauth_nonce":            "kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        "1318622958",
		"oauth_token":            auth.AccessToken,
		"oauth_version":          "1.0",
	}

	base := signatureBase("POST", "https://api.twitter.com/1.1/statuses/update.json", query, oauth)
	assert.True(strings.HasPrefix(base, "POST&https%3A%2F%2Fapi.twitter.com%2F1.1%2Fstatuses%2Fupdate.json&"))
	assert.Contains(base, "oauth_nonce%3DkYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg")
	assert.Contains(base, "status%3DHello%2520Ladies%2520%252B%2520Gentlemen%252C%2520a%2520signed%2520OAuth%2520request%2521")

	sig := hmacSHA1(signingKey(auth.ConsumerSecret, auth.AccessSecret), base)
	assert.Equal("hCtSmYh+iHYCEqBWrE7C7hYmtUk=", sig)
}

func TestAuthorizeHeaderShape(t *testing.T) {
	assert := assert.New(t)

	auth := &UserAuth{
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		AccessToken:    "at",
		AccessSecret:   "as",
	}

	req, err := http.NewRequest("POST", "https://api.twitter.com/2/tweets", nil)
	require.NoError(t, err)

	auth.authorize(req, "fixednonce", time.Unix(1318622958, 0))

	h := req.Header.Get("Authorization")
	assert.True(strings.HasPrefix(h, "OAuth "))
	assert.Contains(h, `oauth_consumer_key="ck"`)
	assert.Contains(h, `oauth_token="at"`)
	assert.Contains(h, `oauth_nonce="fixednonce"`)
	assert.Contains(h, `oauth_timestamp="1318622958"`)
	assert.Contains(h, `oauth_signature_method="HMAC-SHA1"`)
	assert.Contains(h, `oauth_version="1.0"`)
	assert.Contains(h, `oauth_signature="`)

	// signing is deterministic for a fixed nonce and timestamp
	req2, err := http.NewRequest("POST", "https://api.twitter.com/2/tweets", nil)
	require.NoError(t, err)
	auth.authorize(req2, "fixednonce", time.Unix(1318622958, 0))
	assert.Equal(h, req2.Header.Get("Authorization"))
}
