package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var exampleRows = [][]any{
	{
		"tools", "Chat Writer", "Drafts blog posts in seconds", "<p>An AI writing assistant.</p>", "",
		"https://chatwriter.example", "", "", "", "Writing|Marketing", "free", "0",
		4.5, 1200, "Chat Writer Inc", "", "Published",
		"Templates|Tone control", "Blogging", "Fast", "English only",
	},
	{
		"prompts", "Product Launch Email", "A prompt for launch announcements", "<p>Use with any chat model.</p>", "",
		"", "", "", "", "Marketing", "", "",
		"", "", "", "Admin", "Draft",
		"", "", "", "",
	},
}

// WriteTemplate writes an .xlsx with the header row and two examples.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range exampleRows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write example row: %w", err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}
