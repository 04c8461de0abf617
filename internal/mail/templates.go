package mail

import (
	"bytes"
	"html/template"
)

const (
	SubjectVerification = "Verify Your TrendAura Account"
	SubjectLogin        = "Successful Login Notification"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #e83e8c;">Welcome to TrendAura, {{.FirstName}}!</h2>
  <p>Thank you for registering with TrendAura! Please verify your email address to complete your registration.</p>
  <div style="background: #f8f9fa; padding: 20px; text-align: center; margin: 20px 0; border-radius: 5px;">
    <h3 style="margin: 0; color: #e83e8c;">Your Verification Code</h3>
    <div style="font-size: 24px; font-weight: bold; letter-spacing: 2px; margin: 10px 0;">{{.Code}}</div>
    <p style="font-size: 12px; color: #666;">This code will expire in 30 minutes</p>
  </div>
  <p>If you didn't request this, please ignore this email.</p>
</div>`))

var loginTmpl = template.Must(template.New("login").Parse(`<h1>Login Successful</h1>
<p>You have successfully logged in to your TrendAura account{{if .FirstName}}, {{.FirstName}}{{end}}.</p>
<p>If this wasn't you, please contact our support team immediately.</p>
<p>Thank you,</p>
<p>The TrendAura Team</p>`))

// Verification renders the email carrying a verification code.
func Verification(to, firstName, code string) (Message, error) {
	var buf bytes.Buffer
	if err := verificationTmpl.Execute(&buf, struct{ FirstName, Code string }{firstName, code}); err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: SubjectVerification, HTML: buf.String()}, nil
}

// LoginNotification renders the email sent after a successful login.
func LoginNotification(to, firstName string) (Message, error) {
	var buf bytes.Buffer
	if err := loginTmpl.Execute(&buf, struct{ FirstName string }{firstName}); err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: SubjectLogin, HTML: buf.String()}, nil
}
