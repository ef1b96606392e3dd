package mailer

import (
	"time"

	mailtpl "github.com/oksasatya/go-fitness-tracker/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// A job either names a Template with its Data, or carries a pre-rendered
// Subject/Text/HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// WelcomeJob builds the job queued after a signup.
func WelcomeJob(appName, email string, joinedAt time.Time) EmailJob {
	return EmailJob{
		To:       email,
		Template: mailtpl.Welcome,
		Data: mailtpl.WelcomeData{
			AppName:  appName,
			Email:    email,
			JoinedAt: joinedAt.UTC().Format("2006-01-02"),
		}.ToMap(),
	}
}
