package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"splitledger/internal/core"
	ports "splitledger/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.SnapshotWriter = (*Client)(nil)

// New creates a Sheets client for the given spreadsheet using Service Account
// credentials from the environment (GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS).
func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = "Ledger"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// WriteSnapshot clears the mirror sheet and rewrites it with the current
// expenses followed by the suggested settlements.
func (c *Client) WriteSnapshot(ctx context.Context, expenses []core.Expense, settlements []core.Settlement) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:E", c.sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	rows := [][]any{
		{"ID", "Description", "Amount", "Paid By", "Updated At"},
	}
	for _, e := range expenses {
		rows = append(rows, []any{
			e.ID,
			e.Description,
			core.CentsToFloat(e.Amount.Cents),
			e.Payer,
			e.UpdatedAt.Format(time.RFC3339),
		})
	}
	rows = append(rows, []any{}, []any{"From", "To", "Amount"})
	for _, s := range settlements {
		rows = append(rows, []any{s.From, s.To, core.CentsToFloat(s.Amount.Cents)})
	}

	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	vr := &gsheet.ValueRange{Values: rows}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write %s: %w", writeRange, err)
	}

	slog.InfoContext(ctx, "Ledger mirrored to Google Sheets",
		"sheet", c.sheetName,
		"expenses", len(expenses),
		"settlements", len(settlements))
	return nil
}
