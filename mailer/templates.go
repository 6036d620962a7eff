package mailer

import (
	"fmt"
	"log"
)

// emailTemplate wraps body content in the shared HTML shell.
func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A4B; line-height: 1.6; }
			.content h2 { color: #1B3A4B; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #4CAF50; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.code-box { background: #F8F9FA; padding: 15px; border-radius: 4px; border-left: 4px solid #4CAF50; margin: 20px 0; text-align: center; font-size: 32px; letter-spacing: 6px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>COURSE PLATFORM</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You are receiving this email because of an account registered on our platform.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// send delivers in the background; delivery failure is logged, not surfaced.
func send(m Mailer, to, subject, title, body string) {
	go func() {
		if err := m.Send(to, subject, emailTemplate(title, body)); err != nil {
			log.Printf("Error sending email to %s: %v", to, err)
		}
	}()
}

// SendWelcomeEmail greets a freshly registered user.
func SendWelcomeEmail(m Mailer, email, username string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your account has been successfully created. You can now browse courses, enroll and start learning.</p>
	`, username)
	send(m, email, "Welcome!", "Welcome Onboard!", body)
}

// SendPasswordResetEmail carries the signed reset link.
func SendPasswordResetEmail(m Mailer, email, username, resetURL string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We received a request to reset your password. Click the button below to choose a new one. The link expires in 30 minutes.</p>
		<p style="text-align:center;"><a class="btn" href="%s">Reset Password</a></p>
		<p>If you did not request this, you can safely ignore this email.</p>
	`, username, resetURL)
	send(m, email, "Password Reset Request", "Reset Your Password", body)
}

// SendEmailChangeCode carries the 6-digit confirmation code to the new address.
func SendEmailChangeCode(m Mailer, newEmail, username, code string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Use the code below to confirm your new email address:</p>
		<div class="code-box">%s</div>
		<p>Do not share this code with anyone.</p>
	`, username, code)
	send(m, newEmail, "Confirm Your New Email Address", "Email Change Verification", body)
}

// SendEnrollmentEmail confirms a course enrollment.
func SendEnrollmentEmail(m Mailer, email, username, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in:</p>
		<h3 style="text-align:center;">%s</h3>
		<p>Track your progress and complete all lessons to earn your certificate.</p>
	`, username, courseTitle)
	send(m, email, "Course Enrollment Confirmation", "Enrollment Successful!", body)
}

// SendCertificateEmail congratulates a student on course completion.
func SendCertificateEmail(m Mailer, email, username, courseTitle, certificateNumber string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing the course:</p>
		<h3 style="text-align:center;">%s</h3>
		<div class="code-box" style="font-size:18px;letter-spacing:1px;">%s</div>
		<p>You can use this certificate number for verification purposes.</p>
	`, username, courseTitle, certificateNumber)
	send(m, email, "Course Completion Certificate", "Certificate of Completion", body)
}
