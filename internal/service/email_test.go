package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestEmailService_SendAccountStatusNotification(t *testing.T) {
	svc := NewEmailService("smtp.example.com", 587, "user", "pass", "noreply@example.com").(*emailService)

	var sent *gomail.Message
	svc.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	err := svc.SendAccountStatusNotification(context.Background(), "karim@x.io", "Karim", "suspended", "Repeated no-shows")
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, []string{"karim@x.io"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"Account Status Update"}, sent.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Your marketplace account has been suspended.")
	assert.Contains(t, buf.String(), "Reason: Repeated no-shows")

	svc.send = func(*gomail.Message) error { return errors.New("connection refused") }
	err = svc.SendAccountStatusNotification(context.Background(), "karim@x.io", "Karim", "activated", "")
	assert.ErrorContains(t, err, "connection refused")
}
