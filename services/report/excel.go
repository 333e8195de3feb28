// Package report exports the results ledger as an xlsx workbook.
package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/student"
)

const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	resultsHeader = []interface{}{"Roll Number", "Name", "Class", "Subject", "Score", "Grade", "Status"}
	summaryHeader = []interface{}{"Roll Number", "Name", "Class", "Results", "Average", "Highest", "Passed", "Excellent"}
)

// Workbook builds the workbook: one row per ledger entry in insertion order, then one
// summary row per student and an overall line. Callers must Close the returned file.
func Workbook(students []student.Student, entries []result.Entry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "renaming sheet")
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "creating summary sheet")
	}

	if err := writeResults(f, students, entries); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, students, entries); err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and writes it to w.
func Write(w io.Writer, students []student.Student, entries []result.Entry) error {
	f, err := Workbook(students, entries)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrap(f.Write(w), "writing workbook")
}

func writeResults(f *excelize.File, students []student.Student, entries []result.Entry) error {
	byID := make(map[string]student.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}

	if err := writeHeader(f, ResultsSheet, resultsHeader); err != nil {
		return err
	}
	for i, e := range entries {
		st, ok := byID[e.StudentID]
		if !ok {
			st = student.Student{ID: e.StudentID, Name: "Unknown"}
		}
		status := "Failed"
		if e.Passed() {
			status = "Passed"
		}
		row := []interface{}{st.ID, st.Name, st.Class, e.Subject, e.Score, e.Grade().String(), status}
		if err := setRow(f, ResultsSheet, i+2, row); err != nil {
			return err
		}
	}
	return errors.Wrap(f.SetColWidth(ResultsSheet, "A", "G", 16), "sizing columns")
}

func writeSummary(f *excelize.File, students []student.Student, entries []result.Entry) error {
	perStudent := make(map[string][]result.Entry)
	for _, e := range entries {
		perStudent[e.StudentID] = append(perStudent[e.StudentID], e)
	}

	if err := writeHeader(f, SummarySheet, summaryHeader); err != nil {
		return err
	}
	rowNum := 2
	for _, st := range students {
		sum := result.Summarize(perStudent[st.ID])
		row := []interface{}{st.ID, st.Name, st.Class, sum.Count, sum.Average, sum.Highest, sum.Passed, sum.Excellent}
		if err := setRow(f, SummarySheet, rowNum, row); err != nil {
			return err
		}
		rowNum++
	}

	all := result.Summarize(entries)
	total := []interface{}{"Overall", "", "", all.Count, all.Average, all.Highest, all.Passed, all.Excellent}
	if err := setRow(f, SummarySheet, rowNum+1, total); err != nil {
		return err
	}
	return errors.Wrap(f.SetColWidth(SummarySheet, "A", "H", 14), "sizing columns")
}

func writeHeader(f *excelize.File, sheet string, header []interface{}) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return errors.Wrap(err, "locating header")
	}
	return errors.Wrap(f.SetCellStyle(sheet, "A1", last, style), "styling header")
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return errors.Wrapf(err, "locating row %d", rowNum)
	}
	return errors.Wrapf(f.SetSheetRow(sheet, cell, &values), "writing %s row %d", sheet, rowNum)
}
