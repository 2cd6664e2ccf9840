package mailer

import "fmt"

func welcomeEmailTemplate(name, profileURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1 style="color: #0077b5;">Welcome to ProConnect!</h1>
  <p>Hello %s,</p>
  <p>We're thrilled to have you join our professional community. Complete your
  profile to start connecting with colleagues and growing your network.</p>
  <p><a href="%s" style="background-color: #0077b5; color: white; padding: 12px 20px; text-decoration: none; border-radius: 4px;">Complete Your Profile</a></p>
  <p>Best regards,<br>The ProConnect Team</p>
</body>
</html>`, name, profileURL)
}

func connectionAcceptedEmailTemplate(senderName, recipientName, profileURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1 style="color: #0077b5;">Connection Accepted</h1>
  <p>Hello %s,</p>
  <p>Great news! <strong>%s</strong> has accepted your connection request.
  You are now part of each other's network.</p>
  <p><a href="%s" style="background-color: #0077b5; color: white; padding: 12px 20px; text-decoration: none; border-radius: 4px;">View %s's Profile</a></p>
  <p>Best regards,<br>The ProConnect Team</p>
</body>
</html>`, senderName, recipientName, profileURL, recipientName)
}

func commentNotificationEmailTemplate(recipientName, commenterName, postURL, comment string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1 style="color: #0077b5;">New Comment on Your Post</h1>
  <p>Hello %s,</p>
  <p><strong>%s</strong> commented on your post:</p>
  <blockquote style="border-left: 3px solid #0077b5; padding-left: 12px; color: #555;">%s</blockquote>
  <p><a href="%s" style="background-color: #0077b5; color: white; padding: 12px 20px; text-decoration: none; border-radius: 4px;">View Post</a></p>
  <p>Best regards,<br>The ProConnect Team</p>
</body>
</html>`, recipientName, commenterName, comment, postURL)
}
