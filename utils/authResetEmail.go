package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendResetCodeEmail mails the password reset code, with plain text and HTML
// alternatives. SMTP settings come from the environment.
func SendResetCodeEmail(email, code string) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your password reset code")

	m.SetBody("text/plain", "Your password reset code is: "+code)

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Password Reset Code</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f7f6;
				margin: 0;
				padding: 0;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 24px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
				max-width: 600px;
			}
			h1 {
				color: #2d3e40;
			}
			p {
				color: #5a6b6d;
			}
			.code {
				font-size: 1.4em;
				font-weight: bold;
				letter-spacing: 0.2em;
				color: #1a7f72;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Password reset</h1>
			<p>Use this code to reset the password of your clinic account:</p>
			<p class="code">` + code + `</p>
			<p>The code expires in 15 minutes. If you did not request a reset, ignore this email.</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT value: %w", err)
	}
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
