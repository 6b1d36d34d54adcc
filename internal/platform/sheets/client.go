// Package sheets stores tables in a Google Sheets spreadsheet, one sheet per
// table.
package sheets

import (
	"context"
	"fmt"

	"booklend/internal/rowstore"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const valueInputRaw = "RAW"

type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

var _ rowstore.Store = (*Client)(nil)

// NewClient builds a client for one spreadsheet. opts typically carry the
// service account credentials.
func NewClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is required")
	}
	opts = append([]option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}, opts...)
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) ReadTable(ctx context.Context, table string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = toString(v)
		}
		out[i] = cells
	}
	return out, nil
}

func (c *Client) AppendRow(ctx context.Context, table string, values []string) error {
	return c.AppendRows(ctx, table, [][]string{values})
}

func (c *Client) AppendRows(ctx context.Context, table string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	body := &sheetsapi.ValueRange{Values: toValues(rows)}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, table, body).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	return err
}

func (c *Client) UpdateRow(ctx context.Context, table string, rowNumber int, values []string) error {
	rng := fmt.Sprintf("%s!A%d", table, rowNumber)
	return c.update(ctx, rng, [][]string{values})
}

func (c *Client) UpdateCell(ctx context.Context, table string, rowNumber, colIndex int, value string) error {
	rng := fmt.Sprintf("%s!%s%d", table, rowstore.ColumnLetter(colIndex), rowNumber)
	return c.update(ctx, rng, [][]string{{value}})
}

func (c *Client) update(ctx context.Context, rng string, rows [][]string) error {
	body := &sheetsapi.ValueRange{Values: toValues(rows)}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, body).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	return err
}

// DeleteRow removes one row structurally, shifting the rows below it up.
func (c *Client) DeleteRow(ctx context.Context, table string, rowNumber int) error {
	sheetID, err := c.sheetID(ctx, table)
	if err != nil {
		return err
	}
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowNumber - 1),
					EndIndex:   int64(rowNumber),
					// Zero is a valid sheet id and start index.
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	return err
}

func (c *Client) sheetID(ctx context.Context, table string) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return 0, err
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == table {
			return s.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q: %w", table, rowstore.ErrTableNotFound)
}

func toValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
