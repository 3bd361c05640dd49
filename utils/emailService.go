package utils

import (
	"fmt"
	"lms/config"
	"net/smtp"
	"strings"
	"time"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learnly Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E3A8A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E293B; line-height: 1.6; }
			.content h2 { color: #1E3A8A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2563EB; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2563EB; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNLY ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Learnly Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendEnrollmentConfirmationEmail is sent after a verified payment grants access
func SendEnrollmentConfirmationEmail(email, name, courseName string, expiryDate *time.Time) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your payment was verified and you are now enrolled in <strong>%s</strong>.</p>`, name, courseName)

	if expiryDate != nil {
		body += fmt.Sprintf(`
		<div class="info-box">Your access is valid until <strong>%s</strong>.</div>`, expiryDate.Format("January 2, 2006"))
	}

	body += `<p>Happy learning!</p>`

	go SendEmail([]string{email}, "Enrollment Confirmed - "+courseName, getEmailTemplate("Enrollment Confirmed", body))
}

// SendExpiryWarningEmail is sent once when an enrollment is 7 days from expiry
func SendExpiryWarningEmail(email, name, courseName string, expiryDate time.Time) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your access to <strong>%s</strong> expires on <strong>%s</strong>.</p>
		<p>Renew before then to keep watching without interruption.</p>
		<div style="margin: 30px 0;">
			<a href="https://learnly.academy/courses" class="btn">Renew Access</a>
		</div>`, name, courseName, expiryDate.Format("January 2, 2006"))

	go SendEmail([]string{email}, "Your Course Access is Expiring Soon", getEmailTemplate("Access Expiring Soon", body))
}

// SendCourseExpiredEmail is sent when the sweep deactivates an enrollment
func SendCourseExpiredEmail(email, name, courseName string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your access to <strong>%s</strong> has expired.</p>
		<p>You can purchase the course again at any time to continue learning.</p>
		<div style="margin: 30px 0;">
			<a href="https://learnly.academy/courses" class="btn">Browse Courses</a>
		</div>`, name, courseName)

	go SendEmail([]string{email}, "Your Course Access Has Expired", getEmailTemplate("Access Expired", body))
}
