package services

import (
	"bytes"
	"fmt"

	"law_landing_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const leadsSheetName = "Leads"

var leadExportHeaders = []string{"Created", "Name", "Phone", "Email", "Message", "Source URL", "Status"}

// ExportLeadsXLSX renders every stored lead into an .xlsx workbook,
// newest first.
func ExportLeadsXLSX(db *gorm.DB) (*bytes.Buffer, error) {
	var leads []models.Lead
	if err := db.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch leads for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(leadsSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range leadExportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(leadsSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, lead := range leads {
		values := []interface{}{
			lead.CreatedAt.Format("2006-01-02 15:04"),
			lead.Name,
			lead.Phone,
			lead.Email,
			lead.Message,
			lead.SourceURL,
			lead.Status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(leadsSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write lead row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return buf, nil
}
