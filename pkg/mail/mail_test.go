package mail

import (
	"context"
	"strings"
	"testing"

	"Memeow/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailerFallsBackToLog(t *testing.T) {
	m := NewMailer(config.Default())
	_, ok := m.(*LogMailer)
	assert.True(t, ok)

	conf := config.Default()
	conf.Mail = &config.Mail{Host: "smtp.example.com", Port: 587}
	_, ok = NewMailer(conf).(*SMTPMailer)
	assert.True(t, ok)
}

func TestLogMailerRecords(t *testing.T) {
	m := &LogMailer{}
	require.NoError(t, m.Send(context.Background(), "a@example.com", "hi", "body"))
	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "a@example.com", msgs[0].To)
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("from@example.com", "to@example.com", "Subject", "line1\nline2")
	assert.True(t, strings.HasPrefix(msg, "From: from@example.com\r\n"))
	assert.Contains(t, msg, "Subject: Subject\r\n")
	assert.True(t, strings.HasSuffix(msg, "line1\r\nline2"))
}
