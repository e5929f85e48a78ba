package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

const passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GeneratePassword returns a random system-generated password of the given
// length, used for account creation and password recovery. The alphabet
// omits easily-confused characters (0/O, 1/l/I).
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = 10
	}
	var b strings.Builder
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// BuildUsername derives a login name from a person's names: the first
// letter of the given name followed by the first surname, lower case, with
// anything that is not a letter or digit stripped.
func BuildUsername(firstName, firstLastName string) string {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(firstLastName)
	var b strings.Builder
	if first != "" {
		b.WriteRune(unicode.ToLower([]rune(first)[0]))
	}
	for _, r := range strings.ToLower(last) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
