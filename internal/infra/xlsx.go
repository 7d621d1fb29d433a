package infra

import (
	"fmt"
	"io"

	"bisnispintar/internal/dto"
	"bisnispintar/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	stockSheet   = "Stok"
	summarySheet = "Ringkasan"
)

var stockHeaders = []interface{}{
	"ID", "Nama Barang", "Kategori", "Stok", "Harga Modal", "Harga Jual", "Laba/Unit", "Total Modal", "Potensi Laba",
}

// WriteInventoryXLSX exports every item plus a metrics sheet as an .xlsx workbook.
func WriteInventoryXLSX(w io.Writer, items []model.BusinessItem, metrics dto.BusinessMetrics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", stockSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(stockSheet, "A1", &stockHeaders); err != nil {
		return fmt.Errorf("xlsx: headers: %w", err)
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		qty := int64(it.Stock)
		row := []interface{}{
			it.ID,
			it.Name,
			it.Category,
			it.Stock,
			it.CapitalPrice.InexactFloat64(),
			it.SellingPrice.InexactFloat64(),
			it.Margin().InexactFloat64(),
			it.CapitalPrice.Mul(decimal.NewFromInt(qty)).InexactFloat64(),
			it.Margin().Mul(decimal.NewFromInt(qty)).InexactFloat64(),
		}
		if err := f.SetSheetRow(stockSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("xlsx: summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Total Modal Aset", metrics.TotalCapital.InexactFloat64()},
		{"Potensi Omzet", metrics.TotalPotentialRevenue.InexactFloat64()},
		{"Potensi Laba Bersih", metrics.TotalPotentialProfit.InexactFloat64()},
		{"Total Jenis Barang", metrics.TotalItems},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: summary row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}
