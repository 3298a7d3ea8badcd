package utils

import "math/rand"

const tokenCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRandomToken returns a short opaque id for intake events.
func GenerateRandomToken(length int) string {
	token := make([]byte, length)
	for i := range token {
		token[i] = tokenCharset[rand.Intn(len(tokenCharset))]
	}
	return string(token)
}
