package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// InventoryExportItem is one inventory row in the exported spreadsheet.
type InventoryExportItem struct {
	Name     string
	Quantity float64
	Price    float64
}

// GenerateInventoryExcel creates an .xlsx listing the user's inventory.
func GenerateInventoryExcel(items []InventoryExportItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Inventario"

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#334155"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: inventoryBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: inventoryBorders(),
		Alignment: &excelize.Alignment{
			Vertical: "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create data style: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Border:    inventoryBorders(),
		NumFmt:    4, // #,##0.00
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	f.SetColWidth(sheetName, "A", "A", 40)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 16)

	f.MergeCell(sheetName, "A1", "C1")
	f.SetCellValue(sheetName, "A1", "Inventario de Materiales")
	f.SetCellStyle(sheetName, "A1", "C1", titleStyle)

	f.MergeCell(sheetName, "A2", "C2")
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Total: %d productos", len(items)))
	f.SetCellStyle(sheetName, "A2", "C2", subtitleStyle)

	f.SetCellValue(sheetName, "A4", "Producto")
	f.SetCellValue(sheetName, "B4", "Cantidad")
	f.SetCellValue(sheetName, "C4", "Precio ($)")
	f.SetCellStyle(sheetName, "A4", "C4", headerStyle)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      4,
		TopLeftCell: "A5",
		ActivePane:  "bottomLeft",
	})

	for i, item := range items {
		rowNum := i + 5
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), item.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), item.Quantity)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), item.Price)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("B%d", rowNum), dataStyle)
		f.SetCellStyle(sheetName, fmt.Sprintf("C%d", rowNum), fmt.Sprintf("C%d", rowNum), moneyStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

func inventoryBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#CCCCCC", Style: 1},
		{Type: "right", Color: "#CCCCCC", Style: 1},
		{Type: "top", Color: "#CCCCCC", Style: 1},
		{Type: "bottom", Color: "#CCCCCC", Style: 1},
	}
}
