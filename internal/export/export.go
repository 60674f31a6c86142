// Package export renders the conversation store as an xlsx report for
// offline triage review.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"assistlink-go/internal/types"
)

var header = []string{
	"ID", "Title", "Status", "Sentiment", "Ticket ID", "Ticket Type",
	"Resolution", "Messages", "Created At", "Summary", "Escalated",
}

// WriteReport writes one row per conversation to a single-sheet workbook.
func WriteReport(w io.Writer, convs []types.Conversation) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Conversations"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, c := range convs {
		values := []interface{}{
			c.ID, c.Title, c.Status, c.Sentiment, c.TicketID, c.TicketType,
			c.ResolutionStatus, len(c.Messages), c.CreatedAt, c.Summary, c.Escalated,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
