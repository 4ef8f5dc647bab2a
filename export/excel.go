package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/freelyform/freelyform/model"
	"github.com/freelyform/freelyform/validation"
)

const sheetName = "Answers"

// Workbook renders a prefab's submissions as an xlsx workbook: a
// metadata block, a header row with one column per field, and one row
// per submission. Submissions are expected annotated, so answer order
// follows the prefab's visible fields.
func Workbook(prefab model.Prefab, groups []model.AnswerGroup) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	row := 1
	meta := [][]any{
		{"Prefab", prefab.Name},
		{"Description", prefab.Description},
		{"Tags", strings.Join(prefab.Tags, ", ")},
		{"Exported", time.Now().Format("2006-01-02 15:04:05")},
		{"Submissions", len(groups)},
	}
	for _, cells := range meta {
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &cells); err != nil {
			return nil, err
		}
		row++
	}
	row++

	header := []any{"Submitted", "User"}
	for _, g := range prefab.Groups {
		for _, field := range g.Fields {
			header = append(header, fmt.Sprintf("%s / %s", g.Name, field.Label))
		}
	}
	headerRow := row
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &header); err != nil {
		return nil, err
	}
	row++

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), headerRow)
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetCellStyle(sheetName, first, last, bold); err != nil {
		return nil, err
	}

	for _, g := range groups {
		cells := []any{g.CreatedAt.Format("2006-01-02 15:04:05"), submitter(g)}
		for _, sub := range g.Answers {
			for _, q := range sub.Questions {
				cells = append(cells, cellValue(q))
			}
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &cells); err != nil {
			return nil, err
		}
		row++
	}

	return f, nil
}

func submitter(g model.AnswerGroup) string {
	if g.User != nil {
		return g.User.Name
	}
	return "Guest"
}

// cellValue flattens one answer leaf into a spreadsheet cell.
func cellValue(q model.AnswerQuestion) string {
	raw := q.Answer
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	if p, err := validation.ParseLocation(raw); err == nil {
		return fmt.Sprintf("%v, %v", p.Lat(), p.Lon())
	}
	return strings.TrimSpace(string(raw))
}
