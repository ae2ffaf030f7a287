package services

import (
	"context"
	"fmt"
	"os"

	"github.com/ieeespac/spac_site/internal/dto"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// RosterService appends each registration to the organizers' spreadsheet.
type RosterService struct {
	service     *sheets.Service
	spreadsheet string
	sheetName   string
}

func NewRosterService(ctx context.Context, credentialsPath, spreadsheetID, sheetName string) (*RosterService, error) {
	credBytes, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credBytes, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}

	return &RosterService{
		service:     service,
		spreadsheet: spreadsheetID,
		sheetName:   sheetName,
	}, nil
}

func (r *RosterService) Append(ctx context.Context, event dto.RegistrationSubmittedEvent) error {
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{rowFor(event)},
	}

	_, err := r.service.Spreadsheets.Values.Append(
		r.spreadsheet,
		r.sheetName,
		valueRange,
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append roster row %s: %w", event.PublicID, err)
	}
	return nil
}

func rowFor(event dto.RegistrationSubmittedEvent) []interface{} {
	resume := ""
	if event.ResumeURL != nil {
		resume = *event.ResumeURL
	}

	return []interface{}{
		event.SubmittedAt,
		event.PublicID,
		event.FirstName,
		event.LastName,
		event.Email,
		event.Phone,
		event.University,
		event.Program,
		resume,
	}
}
