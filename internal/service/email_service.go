package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"moodimello/internal/models"
	"moodimello/internal/progression"
)

// sesClient is the part of the SES API the email service uses
type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SummaryNotifier delivers session summaries to parents
type SummaryNotifier interface {
	SendSessionSummary(ctx context.Context, toEmail string, summary models.SessionSummary) error
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     sesClient
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	// If fromEmail is empty, create a disabled service
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From Email: %s", fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendSessionSummary emails a parent what their child did in a session
func (s *EmailService) SendSessionSummary(ctx context.Context, toEmail string, summary models.SessionSummary) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): session summary for %s", summary.Profile.Name)
		return nil
	}
	if toEmail == "" {
		log.Printf("Skipping session summary for %s: no parent email on file", summary.Profile.Name)
		return nil
	}

	subject := fmt.Sprintf("%s's MoodiMello session: %d stars earned", summary.Profile.Name, summary.StarsEarned)
	htmlBody, textBody := renderSessionSummary(summary, s.appBaseURL)

	if s.debug {
		log.Printf("[DEBUG] Sending session summary: subject=%s, to=%s", subject, toEmail)
		log.Printf("[DEBUG] HTML body length: %d bytes", len(htmlBody))
	}

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func gameName(id models.GameID) string {
	if info, ok := progression.Games[id]; ok {
		return info.Name
	}
	return string(id)
}

func renderSessionSummary(summary models.SessionSummary, appBaseURL string) (string, string) {
	name := html.EscapeString(summary.Profile.Name)
	minutes := int(summary.EndedAt.Sub(summary.StartedAt).Minutes())

	var rows, lines strings.Builder
	for _, g := range summary.Games {
		badge := ""
		if g.Result.HasBadge() {
			badge = string(g.Result.Badge)
		}
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%s</td></tr>\n",
			html.EscapeString(gameName(g.Game)), g.Result.StarsEarned, html.EscapeString(badge))
		fmt.Fprintf(&lines, "- %s: %d stars", gameName(g.Game), g.Result.StarsEarned)
		if badge != "" {
			fmt.Fprintf(&lines, " and the %s", badge)
		}
		lines.WriteString("\n")
	}
	if len(summary.Games) == 0 {
		rows.WriteString("<tr><td colspan=\"3\">No games finished this time.</td></tr>\n")
		lines.WriteString("No games finished this time.\n")
	}

	badges := make([]string, len(summary.NewBadges))
	for i, b := range summary.NewBadges {
		badges[i] = string(b)
	}
	newBadges := "none"
	if len(badges) > 0 {
		newBadges = strings.Join(badges, ", ")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #a855f7; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		table { width: 100%%; border-collapse: collapse; }
		td, th { padding: 6px; border-bottom: 1px solid #ddd; text-align: left; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s's play session</h1>
		</div>
		<div class="content">
			<p>%s played for about %d minutes and earned <strong>%d stars</strong> (%d in total).</p>
			<table>
				<tr><th>Game</th><th>Stars</th><th>Badge</th></tr>
				%s
			</table>
			<p>New badges: %s</p>
			<p>Ask %s how the games felt. Talking about feelings is part of the fun!</p>
		</div>
		<div class="footer">
			<p>This is an automated email from MoodiMello (%s). Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, name, name, minutes, summary.StarsEarned, summary.TotalStars, rows.String(),
		html.EscapeString(newBadges), name, html.EscapeString(appBaseURL))

	textBody := fmt.Sprintf(`%s played for about %d minutes and earned %d stars (%d in total).

%s
New badges: %s

---
This is an automated email from MoodiMello. Please do not reply.
`, summary.Profile.Name, minutes, summary.StarsEarned, summary.TotalStars, lines.String(), newBadges)

	return htmlBody, textBody
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		if s.debug {
			log.Printf("[DEBUG] SES SendEmail failed: %v", err)
		}
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
