package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMSSenderFromConfig(t *testing.T) {
	s, err := NewSMSSenderFromConfig("none", TwilioConfig{})
	require.NoError(t, err)
	assert.False(t, s.Enabled())
	assert.NoError(t, s.Send(context.Background(), "+27820000000", "hi"))

	s, err = NewSMSSenderFromConfig("twilio", TwilioConfig{AccountSID: "AC123"})
	require.NoError(t, err)
	assert.False(t, s.Enabled(), "missing credentials fall back to the null sender")

	s, err = NewSMSSenderFromConfig("twilio", TwilioConfig{AccountSID: "AC123", AuthToken: "tok", FromNumber: "+15005550006"})
	require.NoError(t, err)
	assert.True(t, s.Enabled())

	s, err = NewSMSSenderFromConfig("LOG", TwilioConfig{})
	require.NoError(t, err)
	assert.True(t, s.Enabled())
	assert.ErrorIs(t, s.Send(context.Background(), " ", "hi"), ErrNoRecipient)

	_, err = NewSMSSenderFromConfig("pigeon", TwilioConfig{})
	assert.Error(t, err)
}

func TestTwilioSender_NoRecipient(t *testing.T) {
	s := NewTwilioSender(TwilioConfig{AccountSID: "AC123", AuthToken: "tok", FromNumber: "+15005550006"})
	assert.ErrorIs(t, s.Send(context.Background(), "", "hi"), ErrNoRecipient)
}
