package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/smtp"
	"strings"

	"stridehub/config"
)

// GenerateRandomCode generates a random numeric code of specified length
func GenerateRandomCode(length int) string {
	const charset = "0123456789"
	code := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			// Fallback to a default code in case of error
			return strings.Repeat("0", length)
		}
		code[i] = charset[num.Int64()]
	}
	return string(code)
}

// SendVerificationEmail sends an email with a verification code over SMTP
func SendVerificationEmail(cfg *config.Config, email, code string) error {
	auth := smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)
	to := []string{email}
	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: Verify Your StrideHub Account\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"<p>Your verification code is: <strong>%s</strong></p>\r\n",
		email, cfg.SMTP.SenderName, cfg.SMTP.SenderEmail, code))

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	if err := smtp.SendMail(addr, auth, cfg.SMTP.SenderEmail, to, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
