package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageCreator is the part of the Twilio API used to send SMS.
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender sends text messages through Twilio.
type SMSSender struct {
	api  MessageCreator
	from string
}

// NewSMSSender creates a Twilio backed sender.
func NewSMSSender(accountSID, authToken, from string) *SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewSMSSenderWithAPI(client.Api, from)
}

func NewSMSSenderWithAPI(api MessageCreator, from string) *SMSSender {
	return &SMSSender{api: api, from: from}
}

// Send texts body to the number to.
func (s *SMSSender) Send(to, body string) error {
	if to == "" {
		return fmt.Errorf("recipient number is required")
	}
	if s.from == "" {
		return fmt.Errorf("TWILIO_FROM_NUMBER is required")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}
