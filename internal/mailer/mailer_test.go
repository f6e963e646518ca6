package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRenderWelcome(t *testing.T) {
	subject, body, err := Render(UserWelcomeTemplate, struct {
		Username       string
		CampgroundsURL string
	}{"alice", "http://localhost:5173/campgrounds"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to YelpCamp!", subject)
	assert.Contains(t, body, "Hi alice,")
	assert.Contains(t, body, `href="http://localhost:5173/campgrounds"`)
}

func TestRenderEscapesData(t *testing.T) {
	_, body, err := Render(UserWelcomeTemplate, struct {
		Username       string
		CampgroundsURL string
	}{"<b>x</b>", ""})
	require.NoError(t, err)
	assert.NotContains(t, body, "<b>x</b>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("missing.tmpl", nil)
	assert.Error(t, err)
}

func TestLogMailer(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := NewLogMailer(zap.New(core).Sugar())

	err := m.Send(UserWelcomeTemplate, "alice", "a@x.com", struct {
		Username       string
		CampgroundsURL string
	}{"alice", "/campgrounds"})
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "a@x.com", fields["to"])
	assert.Equal(t, "Welcome to YelpCamp!", fields["subject"])
}

func TestNewSMTPMailerRequiresHost(t *testing.T) {
	_, err := NewSMTPMailer("", 587, "", "", "noreply@yelpcamp.test")
	assert.Error(t, err)

	m, err := NewSMTPMailer("smtp.test", 587, "u", "p", "noreply@yelpcamp.test")
	require.NoError(t, err)
	assert.NotNil(t, m)
}
