package services

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"linkforge/models"
)

const (
	codeCharset     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 6
	maxCodeAttempts = 10
)

var invalidCodeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// randomCode is a hook so tests can force collisions.
var randomCode = generateRandomCode

// CodeGenerator produces owner-namespaced short codes and avoids
// collisions against existing links.
type CodeGenerator struct {
	db *gorm.DB
}

func NewCodeGenerator(db *gorm.DB) *CodeGenerator {
	return &CodeGenerator{db: db}
}

// Generate returns a short code for the given owner. A custom suffix is
// normalized and must be free; a custom-code collision is the user's
// problem, not ours to retry. Without a suffix a random code is drawn,
// retrying on collision up to maxCodeAttempts.
func (g *CodeGenerator) Generate(owner, custom string) (string, error) {
	if custom != "" {
		code := NormalizeCustomCode(owner, custom)
		taken, err := g.exists(code)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrShortCodeExists
		}
		return code, nil
	}

	for i := 0; i < maxCodeAttempts; i++ {
		suffix, err := randomCode(codeLength)
		if err != nil {
			return "", err
		}
		code := owner + "/" + suffix
		taken, err := g.exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationExhausted
}

func (g *CodeGenerator) exists(code string) (bool, error) {
	var link models.Link
	err := g.db.Select("id").Where("short_code = ?", code).First(&link).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// NormalizeCustomCode lowercases the suffix, replaces anything outside
// [a-zA-Z0-9_-] with '-', and prefixes the owner namespace.
func NormalizeCustomCode(owner, custom string) string {
	clean := invalidCodeChars.ReplaceAllString(strings.ToLower(custom), "-")
	return owner + "/" + clean
}

func generateRandomCode(n int) (string, error) {
	charsetLength := big.NewInt(int64(len(codeCharset)))
	code := make([]byte, n)
	for i := 0; i < n; i++ {
		randomIndex, err := rand.Int(rand.Reader, charsetLength)
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[randomIndex.Int64()]
	}
	return string(code), nil
}
