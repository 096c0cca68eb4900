package config

import (
	"strings"

	"github.com/wasilibs/go-re2"
)

// MinSecretLength is the shortest accepted JWT signing secret.
const MinSecretLength = 16

var topicPattern = re2.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// maskSecret маскирует секрет, оставляя только первые 4 и последние 4 символа
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	// Если секрет слишком короткий, маскируем полностью
	if len(secret) < 12 {
		return "***"
	}

	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}

// Redacted returns a copy of c that is safe to print.
func (c *Config) Redacted() Config {
	out := *c
	out.Auth.JWTSecret = maskSecret(c.Auth.JWTSecret)
	out.QStash.Token = maskSecret(c.QStash.Token)
	out.Ntfy.Token = maskSecret(c.Ntfy.Token)
	return out
}

// formatValidationError форматирует ошибку валидации с маскированным секретом
func formatValidationError(field, message string, secret string) error {
	msg := field + ": " + message
	if masked := maskSecret(secret); masked != "" {
		msg += " (value: " + masked + ")"
	}
	return &ValidationError{Field: field, Message: msg}
}

// ValidationError представляет ошибку валидации с дополнительной информацией
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
