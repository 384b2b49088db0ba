// Package export renders the statistics of one user into xlsx workbooks.
// Workbooks are built fully in memory and returned as bytes.
package export

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/2beens/gymtracker/internal/gymstats/stats"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

type Kind string

const (
	KindData     Kind = "data"
	KindCharts   Kind = "charts"
	KindComplete Kind = "complete"
)

var filePrefixes = map[Kind]string{
	KindData:     "gym_data",
	KindCharts:   "gym_charts",
	KindComplete: "gym_complete_analysis",
}

func ParseKind(s string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := filePrefixes[kind]; !ok {
		return "", fmt.Errorf("unknown export kind [%s]", s)
	}
	return kind, nil
}

// FileName is <prefix>_<user>_<YYYY-MM-DD>.xlsx.
func FileName(kind Kind, username string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", filePrefixes[kind], username, workouts.FormatDate(now))
}

type Workbook struct {
	FileName string
	Sheets   []Sheet
}

// Sheet is a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

func (s *Sheet) add(row ...any) {
	s.Rows = append(s.Rows, row)
}

// Build assembles the workbook of the given kind from a loaded dataset.
func Build(kind Kind, ds *stats.Dataset, username string) (*Workbook, error) {
	var sheets []Sheet
	switch kind {
	case KindData:
		sheets = dataSheets(ds)
	case KindCharts:
		sheets = chartSheets(ds)
	case KindComplete:
		sheets = completeSheets(ds)
	default:
		return nil, fmt.Errorf("unknown export kind [%s]", kind)
	}
	return &Workbook{
		FileName: FileName(kind, username, ds.Now),
		Sheets:   sheets,
	}, nil
}

// Render writes the sheets in order, the header row in bold.
func (wb *Workbook) Render() (_ []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warnf("close workbook %s: %s", wb.FileName, closeErr)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, fmt.Errorf("rename first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return err
	}
	if len(sheet.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
