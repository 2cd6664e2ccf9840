package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends transactional emails through the Mailtrap send API.
type Client struct {
	endpoint  string
	token     string
	fromEmail string
	fromName  string
	http      *http.Client
}

// NewClient creates a new Client for the given API endpoint and token.
func NewClient(endpoint, token, fromEmail, fromName string) *Client {
	return &Client{
		endpoint:  endpoint,
		token:     token,
		fromEmail: fromEmail,
		fromName:  fromName,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	From     address   `json:"from"`
	To       []address `json:"to"`
	Subject  string    `json:"subject"`
	HTML     string    `json:"html"`
	Category string    `json:"category,omitempty"`
}

// Send posts a single HTML email to the send API.
func (c *Client) Send(ctx context.Context, toEmail, subject, html, category string) error {
	payload := sendRequest{
		From:     address{Email: c.fromEmail, Name: c.fromName},
		To:       []address{{Email: toEmail}},
		Subject:  subject,
		HTML:     html,
		Category: category,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail send failed with status %d: %s", resp.StatusCode, msg)
	}
	return nil
}

// SendWelcomeEmail sends the signup welcome email.
func (c *Client) SendWelcomeEmail(ctx context.Context, email, name, profileURL string) error {
	return c.Send(ctx, email, "Welcome to ProConnect", welcomeEmailTemplate(name, profileURL), "welcome")
}

// SendConnectionAcceptedEmail notifies the original sender that their
// connection request was accepted.
func (c *Client) SendConnectionAcceptedEmail(ctx context.Context, email, senderName, recipientName, profileURL string) error {
	subject := recipientName + " accepted your connection request"
	return c.Send(ctx, email, subject, connectionAcceptedEmailTemplate(senderName, recipientName, profileURL), "connection_accepted")
}

// SendCommentNotificationEmail notifies a post author about a new comment.
func (c *Client) SendCommentNotificationEmail(ctx context.Context, email, recipientName, commenterName, postURL, comment string) error {
	subject := commenterName + " commented on your post"
	return c.Send(ctx, email, subject, commentNotificationEmailTemplate(recipientName, commenterName, postURL, comment), "comment_notification")
}
