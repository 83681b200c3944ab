package contentbank

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/catchzone151-stack/IslamQuest-sub001/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines how the question-bank file is laid out
type ImportConfig struct {
	FilePath      string // Path to the Excel or CSV file
	PathColumn    string // Column with the learning-path id
	LessonColumn  string // Column with the lesson id
	PromptColumn  string // Column with the question prompt
	OptionColumns []string // Columns with the answer options
	CorrectColumn string // Column with the 0-based correct option index
	SheetName     string // Name of the sheet to import
	StartRow      int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default bank layout
func DefaultImportConfig(filePath string) ImportConfig {
	return ImportConfig{
		FilePath:      filePath,
		PathColumn:    "A",
		LessonColumn:  "B",
		PromptColumn:  "C",
		OptionColumns: []string{"D", "E", "F", "G"},
		CorrectColumn: "H",
		SheetName:     "Sheet1",
		StartRow:      2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// Load reads the question bank from an Excel or CSV file
func Load(config ImportConfig) (*Bank, *ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return loadFromCSV(config)
	}
	return loadFromExcel(config)
}

func loadFromExcel(config ImportConfig) (*Bank, *ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %v", err)
	}

	bank := NewBank()
	result := &ImportResult{Errors: make([]string, 0)}
	lessonCounters := map[string]int{}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, bank, lessonCounters, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			result.Skipped++
		}
	}
	return bank, result, nil
}

func loadFromCSV(config ImportConfig) (*Bank, *ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	bank := NewBank()
	result := &ImportResult{Errors: make([]string, 0)}
	lessonCounters := map[string]int{}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, bank, lessonCounters, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			result.Skipped++
		}
	}
	return bank, result, nil
}

// processRow turns one file row into a bank question. The question index
// within its lesson comes from a running counter, so the stable item key is
// reproducible across imports as long as the file order is stable.
func processRow(row []string, config ImportConfig, bank *Bank, lessonCounters map[string]int, result *ImportResult) error {
	pathID := cellValue(row, config.PathColumn)
	lessonID := cellValue(row, config.LessonColumn)
	prompt := cellValue(row, config.PromptColumn)
	if pathID == "" || lessonID == "" || prompt == "" {
		return fmt.Errorf("path, lesson and prompt are required")
	}

	options := make([]string, 0, len(config.OptionColumns))
	for _, col := range config.OptionColumns {
		if v := cellValue(row, col); v != "" {
			options = append(options, v)
		}
	}
	if len(options) < 2 {
		return fmt.Errorf("at least two options are required")
	}

	correct, err := strconv.Atoi(cellValue(row, config.CorrectColumn))
	if err != nil || correct < 0 || correct >= len(options) {
		return fmt.Errorf("correct option index out of range")
	}

	counterKey := pathID + ":" + lessonID
	bank.Add(models.Question{
		PathID:        pathID,
		LessonID:      lessonID,
		Index:         lessonCounters[counterKey],
		Prompt:        prompt,
		Options:       options,
		CorrectOption: correct,
	})
	lessonCounters[counterKey]++
	result.Imported++
	return nil
}

func cellValue(row []string, column string) string {
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// columnToIndex converts an Excel column letter to a 0-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
