package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// New worksheets get the same default grid the sheet UI would.
const (
	newSheetRows = 1000
	newSheetCols = 10
)

type Client struct {
	svc *sheets.Service
}

// NewClient authenticates against the Sheets API with a service account JSON
// file.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, errors.Wrapf(err, "Google Sheets credentials not found at %s", credentialsFile)
	}
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not build Sheets service")
	}
	return &Client{svc: svc}, nil
}

// WorksheetName builds the conventional tab name for a wallet suffix.
func WorksheetName(suffix string) string {
	return fmt.Sprintf("USDT_%s_RAW", suffix)
}

// WriteRows replaces the full content of the named worksheet with header plus
// rows, creating the worksheet if it does not exist yet. An empty row set
// still leaves a header-only worksheet behind.
func (c *Client) WriteRows(ctx context.Context, spreadsheetID string, worksheetName string, header []string, rows [][]string) error {
	if err := c.ensureWorksheet(ctx, spreadsheetID, worksheetName); err != nil {
		return err
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toCells(header))
	for _, row := range rows {
		values = append(values, toCells(row))
	}

	_, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, worksheetName, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, "could not clear worksheet %s", worksheetName)
	}

	_, err = c.svc.Spreadsheets.Values.Update(spreadsheetID, worksheetName+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, "could not update worksheet %s", worksheetName)
	}

	return nil
}

func (c *Client) ensureWorksheet(ctx context.Context, spreadsheetID string, worksheetName string) error {
	spreadsheet, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, "could not open spreadsheet %s", spreadsheetID)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == worksheetName {
			return nil
		}
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: worksheetName,
					GridProperties: &sheets.GridProperties{
						RowCount:    newSheetRows,
						ColumnCount: newSheetCols,
					},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, "could not create worksheet %s", worksheetName)
	}

	return nil
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
