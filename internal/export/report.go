// Package export renders reconcile batches as spreadsheets for the manual
// review loop: medium and low confidence matches get confirmed (or fixed) by
// a human, and a workbook is the format merchandisers actually work in.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/catifypro/matcher/internal/domain"
)

var reportHeaders = []string{
	"filename", "query", "status",
	"best_sku", "best_name", "best_score", "confidence", "method",
	"runner_up_sku", "runner_up_score",
}

// ReconcileWorkbook builds an XLSX workbook with one row per uploaded image.
func ReconcileWorkbook(result *domain.ReconcileResult) (*excelize.File, error) {
	if result == nil {
		return nil, domain.ErrInvalidRequest
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, image := range result.Images {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, image.Filename)
		set(2, image.Query)
		set(3, string(image.Status))

		if len(image.Suggestions) > 0 {
			best := image.Suggestions[0]
			set(4, best.Product.SKU)
			set(5, best.Product.Name)
			set(6, best.Score)
			set(7, best.Confidence)
			set(8, best.Method)
		}
		if len(image.Suggestions) > 1 {
			second := image.Suggestions[1]
			set(9, second.Product.SKU)
			set(10, second.Score)
		}
	}

	return f, nil
}

// WriteReconcileXLSX streams the review workbook for a reconcile batch.
func WriteReconcileXLSX(result *domain.ReconcileResult, w io.Writer) error {
	f, err := ReconcileWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
