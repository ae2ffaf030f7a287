package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/ieeespac/spac_site/internal/dto"
)

type ConfirmationSender interface {
	SendConfirmation(event dto.RegistrationSubmittedEvent) error
}

type RosterWriter interface {
	Append(ctx context.Context, event dto.RegistrationSubmittedEvent) error
}

type MailHandler struct {
	Mail   ConfirmationSender
	Roster RosterWriter // optional
}

func NewMailHandler(mail ConfirmationSender, roster RosterWriter) *MailHandler {
	return &MailHandler{Mail: mail, Roster: roster}
}

// HandleMessage sends the confirmation and records the roster row. A failed
// email does not stop the roster write.
func (h *MailHandler) HandleMessage(message string) error {
	var event dto.RegistrationSubmittedEvent

	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Printf("invalid event payload: %s\n", message)
		return err
	}

	log.Printf("Registration event received: public_id=%s email=%s", event.PublicID, event.Email)

	mailErr := h.Mail.SendConfirmation(event)
	if mailErr != nil {
		log.Println("[MAIL] send failed, err =", mailErr)
	}

	var rosterErr error
	if h.Roster != nil {
		rosterErr = h.Roster.Append(context.Background(), event)
		if rosterErr != nil {
			log.Println("[ROSTER] append failed, err =", rosterErr)
		}
	}

	return errors.Join(mailErr, rosterErr)
}
