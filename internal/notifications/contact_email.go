package notifications

import (
	"bytes"
	"html/template"

	"wildtrack-backend/internal/messages"
)

const contactNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New contact message</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
  <p><strong>Category:</strong> {{.Category}}</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <p><strong>ID:</strong> {{.ID}}</p>
  <p><strong>Message:</strong><br/>{{.Message}}</p>
</body>
</html>`

var contactNotificationTmpl = template.Must(template.New("contact_notification").Parse(contactNotificationTemplate))

func buildContactNotificationHTML(m messages.Message) (string, error) {
	var buf bytes.Buffer
	if err := contactNotificationTmpl.Execute(&buf, m); err != nil {
		return "", err
	}
	return buf.String(), nil
}
