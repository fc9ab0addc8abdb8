package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/sangkips/bizhub-api/internal/domain/pricing"
	"github.com/sangkips/bizhub-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// ImportLeadRow represents a single row from the import file
type ImportLeadRow struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Source  string
	Value   string
	Notes   string
}

// ImportResult contains the result of an import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseLeadSheet reads lead rows from the first sheet of an xlsx workbook.
// The first row is a header; columns are matched by name, case-insensitively.
func ParseLeadSheet(r io.Reader) ([]ImportLeadRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("File is not a valid xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, apperror.NewBadRequestError("Sheet is empty")
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "file", Message: "Header row must contain a name column"},
		})
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]ImportLeadRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, ImportLeadRow{
			Name:    cell(row, "name"),
			Email:   cell(row, "email"),
			Phone:   cell(row, "phone"),
			Company: cell(row, "company"),
			Source:  cell(row, "source"),
			Value:   cell(row, "value"),
			Notes:   cell(row, "notes"),
		})
	}
	return out, nil
}

// ImportLeads validates and bulk-creates leads from parsed import rows
func (s *LeadService) ImportLeads(ctx context.Context, userID uuid.UUID, rows []ImportLeadRow) (*ImportResult, error) {
	businessID, err := requireBusiness(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(rows)}
	var rowErrors []ImportRowError
	seenEmails := make(map[string]int)
	var valid []entity.Lead

	for i, row := range rows {
		rowNum := i + 2 // row 1 is the header

		if row.Name == "" {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		email := strings.ToLower(row.Email)
		if email != "" {
			if !strings.Contains(email, "@") {
				rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "email", Message: "Invalid email address"})
				continue
			}
			if prevRow, exists := seenEmails[email]; exists {
				rowErrors = append(rowErrors, ImportRowError{
					Row:     rowNum,
					Field:   "email",
					Message: fmt.Sprintf("Duplicate email '%s' (same as row %d)", email, prevRow),
				})
				continue
			}
			seenEmails[email] = rowNum
		}

		lead := entity.Lead{
			BusinessID: businessID,
			UserID:     userID,
			Name:       row.Name,
			Email:      optional(&email),
			Phone:      optional(&row.Phone),
			Company:    optional(&row.Company),
			Source:     optional(&row.Source),
			Status:     enum.LeadStatusNew,
			Value:      pricing.Coerce(row.Value),
			Notes:      optional(&row.Notes),
		}
		valid = append(valid, lead)
	}

	if len(valid) > 0 {
		if err := s.leadRepo.CreateBatch(ctx, valid); err != nil {
			return nil, apperror.Wrap(http.StatusInternalServerError, "Failed to import leads", err)
		}
	}

	result.Successful = len(valid)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors
	return result, nil
}
