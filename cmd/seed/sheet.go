package main

import (
	"fmt"
	"strings"

	"github.com/ikkim/recipe-box/internal/app/service"
	"github.com/xuri/excelize/v2"
)

// Sheet columns. Ingredients and steps hold one entry per line;
// an ingredient line is "quantity | unit | name", "quantity | name" or "name".
const (
	colTitle = iota
	colDescription
	colImage
	colTags
	colIngredients
	colSteps
)

type skippedRow struct {
	Row    int
	Reason string
}

type sheetResult struct {
	Rows    int
	Recipes []service.RecipeInput
	Skipped []skippedRow
}

func readRecipesFromXLSX(filePath string) (*sheetResult, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	// 첫 번째 시트만 읽음
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	return parseRows(rows), nil
}

// parseRows skips the header row and any row the create form would reject
func parseRows(rows [][]string) *sheetResult {
	result := &sheetResult{Rows: len(rows) - 1}
	seen := make(map[string]bool) // 중복 제목 제거용

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNumber := i + 1

		input := parseRow(row)
		if _, err := service.NormalizeRecipeInput(input); err != nil {
			result.Skipped = append(result.Skipped, skippedRow{Row: rowNumber, Reason: err.Error()})
			continue
		}

		key := strings.ToLower(strings.TrimSpace(input.Title))
		if seen[key] {
			result.Skipped = append(result.Skipped, skippedRow{Row: rowNumber, Reason: "duplicate title"})
			continue
		}
		seen[key] = true

		result.Recipes = append(result.Recipes, input)
	}
	return result
}

func parseRow(row []string) service.RecipeInput {
	input := service.RecipeInput{
		Title:       cell(row, colTitle),
		Description: cell(row, colDescription),
		Image:       cell(row, colImage),
		Tags:        cell(row, colTags),
		Steps:       lines(cell(row, colSteps)),
	}

	for _, line := range lines(cell(row, colIngredients)) {
		qty, unit, name := parseIngredient(line)
		input.IngredientNames = append(input.IngredientNames, name)
		input.IngredientQuantities = append(input.IngredientQuantities, qty)
		input.IngredientUnits = append(input.IngredientUnits, unit)
	}
	return input
}

func parseIngredient(line string) (qty, unit, name string) {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch len(parts) {
	case 1:
		return "", "", parts[0]
	case 2:
		return parts[0], "", parts[1]
	default:
		return parts[0], parts[1], strings.Join(parts[2:], " ")
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func lines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
