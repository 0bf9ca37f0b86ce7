// Package sheets implements rowstore.RowStore on a Google Sheets
// spreadsheet, one sheet per table.
package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"kronibola/internal/rowstore"
)

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func New(serviceAccountJSONPath, spreadsheetID string) (*Client, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	ctx := context.Background()
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

func (c *Client) ReadAll(ctx context.Context, table string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, table+"!A:Z").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", rowstore.ErrConnection, table, err)
	}
	return resp.Values, nil
}

func (c *Client) AppendRow(ctx context.Context, table string, row []interface{}) error {
	return c.AppendRows(ctx, table, [][]interface{}{row})
}

func (c *Client) AppendRows(ctx context.Context, table string, rows [][]interface{}) error {
	vr := &sheetsv4.ValueRange{Values: rows}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, table+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: append %s: %v", rowstore.ErrConnection, table, err)
	}
	return nil
}

func (c *Client) Clear(ctx context.Context, table string) error {
	_, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, table+"!A:Z", &sheetsv4.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: clear %s: %v", rowstore.ErrConnection, table, err)
	}
	return nil
}
