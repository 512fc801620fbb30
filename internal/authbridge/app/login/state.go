package login

import (
	"crypto/rand"
	"encoding/base64"
)

type StateGenerator interface {
	Generate() (string, error)
}

type randomStateGenerator struct{}

func NewRandomStateGenerator() StateGenerator {
	return randomStateGenerator{}
}

func (randomStateGenerator) Generate() (string, error) {
	return randomToken()
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
