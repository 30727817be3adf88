// Package notify emails a failure summary after a harness run, so broken
// deployments surface without anyone watching the console.
package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go/aws"         //nolint:staticcheck // TODO: Migrate to aws-sdk-go-v2
	"github.com/aws/aws-sdk-go/aws/session" //nolint:staticcheck
	"github.com/aws/aws-sdk-go/service/ses" //nolint:staticcheck

	"github.com/reelforge/reelforge-qa/internal/config"
	"github.com/reelforge/reelforge-qa/internal/report"
)

type EmailNotifier struct {
	cfg       *config.Config
	sesClient *ses.SES
}

func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	// Initialize AWS SES client
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWSRegion),
	}))

	return &EmailNotifier{
		cfg:       cfg,
		sesClient: ses.New(sess),
	}
}

// Enabled reports whether a recipient is configured
func (n *EmailNotifier) Enabled() bool {
	return n.cfg.ReportEmail != ""
}

// SendFailureReport emails the run summary when checks failed
func (n *EmailNotifier) SendFailureReport(rec *report.Recorder, target string) error {
	if !n.Enabled() {
		return nil
	}

	htmlTemplate := `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>ReelForge QA Failures</title>
</head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #c0392b;">ReelForge QA: {{.Failed}} check(s) failed</h2>
    <p style="color: #666;">
        Target: <code>{{.Target}}</code><br>
        Run at: {{.RunAt}}
    </p>
    <pre style="background-color: #f4f4f4; padding: 15px; border-radius: 5px; font-size: 12px;">{{.Summary}}</pre>
</body>
</html>`

	tmpl, err := template.New("failure-report").Parse(htmlTemplate)
	if err != nil {
		return err
	}

	var htmlBody bytes.Buffer
	err = tmpl.Execute(&htmlBody, map[string]interface{}{
		"Failed":  rec.Failed(),
		"Target":  target,
		"RunAt":   time.Now().UTC().Format(time.RFC3339),
		"Summary": rec.Summary(),
	})
	if err != nil {
		return err
	}

	textBody := fmt.Sprintf(`ReelForge QA: %d check(s) failed

Target: %s
Run at: %s

%s
`, rec.Failed(), target, time.Now().UTC().Format(time.RFC3339), rec.Summary())

	subject := fmt.Sprintf("ReelForge QA: %d check(s) failed against %s", rec.Failed(), target)

	// Send email using AWS SES
	input := &ses.SendEmailInput{
		Source: aws.String(n.cfg.ReportEmailFrom),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(n.cfg.ReportEmail)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &ses.Body{
				Html: &ses.Content{
					Data:    aws.String(htmlBody.String()),
					Charset: aws.String("UTF-8"),
				},
				Text: &ses.Content{
					Data:    aws.String(textBody),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	_, err = n.sesClient.SendEmail(input)
	return err
}
