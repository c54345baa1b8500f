package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingMailer struct {
	to    string
	title string
}

func (m *recordingMailer) SendListingPublishedEmail(toEmail, listingTitle string) error {
	m.to = toEmail
	m.title = listingTitle
	return nil
}

func TestSendListingPublishedEmail_Mock(t *testing.T) {
	m := &recordingMailer{}
	err := m.SendListingPublishedEmail("seller@example.com", "Chaise en bois")

	assert.NoError(t, err)
	assert.Equal(t, "seller@example.com", m.to)
	assert.Equal(t, "Chaise en bois", m.title)
}
