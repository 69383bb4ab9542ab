// Package mail delivers the account-created message that carries a new
// account's initial credentials.
package mail

import (
	"fmt"
	"html"

	"github.com/bilemo/bilemo-api/internal/core/domain"
)

const subject = "Your BileMo API account"

type message struct {
	Subject string
	Text    string
	HTML    string
}

func accountMessage(n domain.AccountNotification) message {
	kind := "client"
	if n.Kind == domain.RoleUser {
		kind = "user"
	}
	text := fmt.Sprintf(
		"Hello %s,\n\nA BileMo %s account has been created for you.\n\nLogin: %s\nPassword: %s\n\nPlease keep these credentials safe.\n",
		n.Name, kind, n.Email, n.Password,
	)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>A BileMo %s account has been created for you.</p><p>Login: <strong>%s</strong><br>Password: <strong>%s</strong></p><p>Please keep these credentials safe.</p>",
		html.EscapeString(n.Name), kind, html.EscapeString(n.Email), html.EscapeString(n.Password),
	)
	return message{Subject: subject, Text: text, HTML: body}
}
