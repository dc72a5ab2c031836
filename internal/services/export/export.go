// Package export writes user snapshots to xlsx workbooks and single
// conversations to JSON files on local disk.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
)

const (
	usersSheet      = "Users"
	emailPlansSheet = "Emails_Plans"

	timestampLayout = "20060102_150405"
)

// UserHeader is the column order of the full user export.
var UserHeader = []string{"Email", "Plan", "First Name", "Last Name", "Verified", "Created At", "Daily Requests"}

// EmailPlanHeader is the column order of the minimal export.
var EmailPlanHeader = []string{"Email", "Plan"}

// UserRows projects users into full export rows. Missing fields
// render as "N/A"; the plan column uses the normalized plan.
func UserRows(users []models.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			models.OrNA(u.Email),
			u.PlanOrUnknown(),
			models.OrNA(u.FirstName),
			models.OrNA(u.LastName),
			models.YesNo(u.IsVerified),
			models.FormatDate(u.CreatedAt),
			fmt.Sprintf("%d", u.DailyRequests),
		})
	}
	return rows
}

// EmailPlanRows projects users into minimal email/plan rows.
func EmailPlanRows(users []models.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			models.OrNA(u.Email),
			u.PlanOrUnknown(),
		})
	}
	return rows
}

// WriteUsersXLSX writes the full user export to dir and returns the
// file path.
func WriteUsersXLSX(dir string, users []models.User, now time.Time) (string, error) {
	name := fmt.Sprintf("gaia_users_%s.xlsx", now.Format(timestampLayout))
	path := filepath.Join(dir, name)
	if err := writeWorkbook(path, usersSheet, UserHeader, UserRows(users)); err != nil {
		return "", err
	}
	return path, nil
}

// WriteEmailPlanXLSX writes the minimal email/plan export to dir and
// returns the file path.
func WriteEmailPlanXLSX(dir string, users []models.User, now time.Time) (string, error) {
	name := fmt.Sprintf("gaia_emails_plans_%s.xlsx", now.Format(timestampLayout))
	path := filepath.Join(dir, name)
	if err := writeWorkbook(path, emailPlansSheet, EmailPlanHeader, EmailPlanRows(users)); err != nil {
		return "", err
	}
	return path, nil
}

func writeWorkbook(path, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("resolving row %d: %w", rowNum, err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}

// WriteConversationJSON writes a single conversation, messages
// included, to dir as indented JSON and returns the file path.
func WriteConversationJSON(dir string, conv models.Conversation) (string, error) {
	name := fmt.Sprintf("gaia_conversation_%s.json", conv.ID)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding conversation %s: %w", conv.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
