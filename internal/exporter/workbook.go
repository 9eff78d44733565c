package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"creditcli/pkg/contracts/domain"
)

// WorkbookFileName is the artifact name for the spreadsheet form.
const WorkbookFileName = "credit_report.xlsx"

// accountColumns is the fixed column layout of the per-bureau sheets.
var accountColumns = []struct {
	header string
	key    string
}{
	{header: "Account #", key: "account_number"},
	{header: "Account Status", key: "account_status"},
	{header: "Payment Status", key: "payment_status"},
	{header: "Balance Owed", key: "balance_owed"},
	{header: "High Balance", key: "high_balance"},
	{header: "Credit Limit", key: "credit_limit"},
	{header: "Monthly Payment", key: "monthly_payment"},
	{header: "Date Opened", key: "date_opened"},
	{header: "Date Closed", key: "date_closed"},
	{header: "Last Reported", key: "last_reported"},
	{header: "Remarks", key: "remarks"},
}

// WorkbookWriter renders a credit report into a multi-sheet Excel
// workbook: one sheet per bureau, plus a summary and an inquiries sheet.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer instance.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger.With(slog.String("component", "workbook_writer"))}
}

// Write builds the workbook under outputDir and returns the file path.
func (w *WorkbookWriter) Write(report *domain.CreditReport, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for _, bureau := range domain.BureauOrder {
		if err := w.writeBureauSheet(f, report, bureau, headerStyle); err != nil {
			return "", err
		}
	}
	if err := w.writeSummarySheet(f, report, headerStyle); err != nil {
		return "", err
	}
	if err := w.writeInquiriesSheet(f, report, headerStyle); err != nil {
		return "", err
	}

	// Drop the default sheet once the real ones exist.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	path := filepath.Join(outputDir, WorkbookFileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Excel workbook written",
		slog.String("path", path),
		slog.Int("accounts", len(report.Accounts)),
		slog.Int("inquiries", len(report.Inquiries)))
	return path, nil
}

// sheetName renders a bureau key as a sheet title.
func sheetName(bureau domain.Bureau) string {
	switch bureau {
	case domain.BureauTransUnion:
		return "TransUnion"
	case domain.BureauExperian:
		return "Experian"
	default:
		return "Equifax"
	}
}

func (w *WorkbookWriter) writeBureauSheet(f *excelize.File, report *domain.CreditReport, bureau domain.Bureau, headerStyle int) error {
	sheet := sheetName(bureau)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	row := 1
	setRow := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
		return nil
	}

	// Personal details block.
	if err := setRow("Credit Score", report.Scores.Get(bureau)); err != nil {
		return err
	}
	info := report.PersonalInfo.Get(bureau)
	for _, key := range []string{"name", "year_of_birth", "current_address", "previous_address", "employer"} {
		if v, ok := info[key]; ok {
			if err := setRow(titleCase(key), v); err != nil {
				return err
			}
		}
	}
	row++

	// Accounts table.
	headers := []interface{}{"Creditor"}
	for _, col := range accountColumns {
		headers = append(headers, col.header)
	}
	headers = append(headers, "Payment History")

	headerRow := row
	if err := setRow(headers...); err != nil {
		return err
	}
	if err := styleRow(f, sheet, headerRow, len(headers), headerStyle); err != nil {
		return err
	}

	for _, account := range report.Accounts {
		fields := account.Get(bureau)
		values := []interface{}{account.Creditor}
		for _, col := range accountColumns {
			values = append(values, fields[col.key])
		}
		values = append(values, historyCell(account.PaymentHistory.Get(bureau)))
		if err := setRow(values...); err != nil {
			return err
		}
	}

	if len(report.Collections) > 0 {
		row++
		collHeaderRow := row
		if err := setRow("Collection Agency", "Account #", "Balance Owed", "Payment Status"); err != nil {
			return err
		}
		if err := styleRow(f, sheet, collHeaderRow, 4, headerStyle); err != nil {
			return err
		}
		for _, collection := range report.Collections {
			fields := collection.Get(bureau)
			if err := setRow(collection.Agency, fields["account_number"], fields["balance_owed"], fields["payment_status"]); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "M", 18)
}

func (w *WorkbookWriter) writeSummarySheet(f *excelize.File, report *domain.CreditReport, headerStyle int) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"Metric", "TransUnion", "Experian", "Equifax"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(headers), headerStyle); err != nil {
		return err
	}

	metrics := []struct {
		label string
		key   string
	}{
		{label: "Total Accounts", key: "total_accounts"},
		{label: "Open Accounts", key: "open_accounts"},
		{label: "Closed Accounts", key: "closed_accounts"},
		{label: "Delinquent", key: "delinquent"},
		{label: "Derogatory", key: "derogatory"},
		{label: "Balances", key: "balances"},
		{label: "Monthly Payments", key: "monthly_payments"},
		{label: "Credit Utilization", key: "credit_utilization"},
		{label: "Public Records", key: "public_records"},
		{label: "Inquiries (2 years)", key: "inquiries_2y"},
	}

	for i, metric := range metrics {
		values := []interface{}{metric.label}
		for _, bureau := range domain.BureauOrder {
			values = append(values, report.Summary.Get(bureau)[metric.key])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "D", 20)
}

func (w *WorkbookWriter) writeInquiriesSheet(f *excelize.File, report *domain.CreditReport, headerStyle int) error {
	const sheet = "Inquiries"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []interface{}{"Creditor", "Date", "Bureau"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(headers), headerStyle); err != nil {
		return err
	}

	for i, inquiry := range report.Inquiries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{inquiry.Creditor, inquiry.Date, inquiry.Bureau}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "C", 24)
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

// historyCell flattens one bureau's payment history grid into a cell.
func historyCell(history domain.PaymentHistory) string {
	if history.NoneReported {
		return domain.NoneReportedSentinel
	}
	if history.IsZero() {
		return ""
	}
	var parts []string
	for i := range history.Months {
		if history.Months[i] == "" && history.Statuses[i] == domain.NoDataStatus {
			continue
		}
		parts = append(parts, strings.TrimSpace(history.Months[i]+" "+history.Statuses[i]))
	}
	return strings.Join(parts, ", ")
}

// titleCase renders a snake_case field key as a display label.
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
