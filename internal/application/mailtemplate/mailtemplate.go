// Package mailtemplate renders the transactional emails sent by the service.
package mailtemplate

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const footer = `
  <hr>
  <p style="color: #6B7280; font-size: 12px;">
    This is an automated email from {{.Product}}.
  </p>
</div>`

var otpTmpl = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #6B46C1;">{{.Product}}</h2>
  <h3>Email Verification Code</h3>
  <p>Your verification code is:</p>
  <div style="background-color: #F3F4F6; padding: 20px; text-align: center; border-radius: 8px;">
    <h1 style="color: #6B46C1; font-size: 32px; margin: 0;">{{.Code}}</h1>
  </div>
  <p>This code will expire in {{.Validity}}.</p>
  <p>If you didn't request this code, please ignore this email.</p>` + footer))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #6B46C1;">Welcome to {{.Product}}!</h2>
  <p>Hi {{.Name}},</p>
  <p>Thank you for joining {{.Product}}! Your account has been successfully created.</p>
  <p>Start your journey to {{.Exam}} success with:</p>
  <ul>
    <li>Practice tests and questions</li>
    <li>AI-powered learning assistance</li>
    <li>Progress tracking and analytics</li>
    <li>Leaderboards and achievements</li>
  </ul>
  <p>Ready to ace your {{.Exam}}? Let's get started!</p>` + footer))

// Email is a rendered message ready for the mailer.
type Email struct {
	Subject string
	HTML    string
}

// Renderer renders emails branded with a product and the exam it prepares for.
type Renderer struct {
	product string
	exam    string
}

func New(product, exam string) *Renderer {
	return &Renderer{product: product, exam: exam}
}

// OTP renders the verification code email.
func (r *Renderer) OTP(code string, ttl time.Duration) (Email, error) {
	html, err := render(otpTmpl, map[string]any{
		"Product":  r.product,
		"Code":     code,
		"Validity": validity(ttl),
	})
	if err != nil {
		return Email{}, err
	}
	return Email{Subject: fmt.Sprintf("%s - Email Verification Code", r.product), HTML: html}, nil
}

// Welcome renders the post-signup welcome email. name is HTML-escaped.
func (r *Renderer) Welcome(name string) (Email, error) {
	html, err := render(welcomeTmpl, map[string]any{
		"Product": r.product,
		"Name":    name,
		"Exam":    r.exam,
	})
	if err != nil {
		return Email{}, err
	}
	return Email{Subject: fmt.Sprintf("Welcome to %s!", r.product), HTML: html}, nil
}

// validity spells out ttl without overstating it: whole minutes when exact,
// otherwise seconds.
func validity(ttl time.Duration) string {
	secs := int64(ttl / time.Second)
	if secs%60 != 0 {
		return plural(secs, "second")
	}
	return plural(secs/60, "minute")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func render(t *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
