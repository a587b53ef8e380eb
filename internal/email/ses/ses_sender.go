package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"diacfix/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendDownloadEmail(ctx context.Context, toEmail, downloadURL, fileName, transactionID string) error {
	subject := "DiacriticeFix - Documentul tău a fost reparat"
	htmlBody := buildDownloadHTML(downloadURL, fileName, transactionID)
	textBody := fmt.Sprintf(
		"Documentul tău a fost reparat cu succes!\n\nDescarcă versiunea curățată aici:\n%s\n\nAtenție: link-ul de descărcare este valabil 60 de minute.\n\nID tranzacție: %s\nDocument: %s\n\nDiacriticeFix",
		downloadURL, transactionID, fileName)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildDownloadHTML(downloadURL, fileName, transactionID string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #1a237e; margin-bottom: 10px;">DiacriticeFix</h1>
    <p style="color: #666; font-size: 14px;">Repară automat diacriticile din PDF-uri</p>
  </div>
  <div style="background: #f8f9fa; border-radius: 10px; padding: 25px; margin-bottom: 25px;">
    <h2 style="color: #1a237e; margin-top: 0;">Documentul tău a fost reparat cu succes!</h2>
    <p style="line-height: 1.6; margin-bottom: 20px;">
      Am reparat toate diacriticile (ș, ț, â, î, ă) din documentul tău. Poți descărca versiunea curățată folosind butonul de mai jos.
    </p>
    <p style="text-align: center; margin: 30px 0;">
      <a href="%s" style="background: #e91e63; color: white; text-decoration: none; padding: 12px 30px; border-radius: 5px; font-weight: bold; display: inline-block;">DESCARCĂ DOCUMENTUL REPARAT</a>
    </p>
    <p style="line-height: 1.6; color: #666; font-size: 14px;">
      <strong>Atenție:</strong> Link-ul de descărcare este valabil pentru 60 de minute. Dacă expiră, te rugăm să contactezi suportul.
    </p>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
      <p style="margin: 5px 0; color: #666; font-size: 14px;"><strong>ID tranzacție:</strong> %s</p>
      <p style="margin: 5px 0; color: #666; font-size: 14px;"><strong>Document:</strong> %s</p>
    </div>
  </div>
  <div style="text-align: center; color: #666; font-size: 12px;">
    <p><a href="mailto:contact@diacriticefix.ro" style="color: #666; text-decoration: none;">contact@diacriticefix.ro</a></p>
  </div>
</body>
</html>`, downloadURL, transactionID, fileName)
}
