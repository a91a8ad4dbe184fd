package security

import "time"

const (
	testIssuer   = "report-portal-test"
	testAudience = "report-portal-test-api"
)

// NewTestTokenProvider returns a TokenProvider signing with a fresh ES256 key and a
// 15 minute access TTL. Packages outside security use it to mint tokens in tests.
func NewTestTokenProvider() (*TokenProvider, error) {
	key, err := GenerateEphemeralKey()
	if err != nil {
		return nil, err
	}
	return NewTokenProvider(key, key.Public(), testIssuer, testAudience, 15*time.Minute), nil
}
