package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
)

func TestUserRows(t *testing.T) {
	users := []models.User{
		{
			Email: "ada@example.com", Plan: "pro",
			FirstName: "Ada", LastName: "Lovelace",
			IsVerified: true, CreatedAt: "2026-01-15T10:30:00Z",
			DailyRequests: 42,
		},
		{Email: "bare@example.com"},
	}

	rows := UserRows(users)
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}

	want := []string{"ada@example.com", "pro", "Ada", "Lovelace", "Yes", "15/01/2026 10:30", "42"}
	for i, w := range want {
		if rows[0][i] != w {
			t.Errorf("row 0 col %d = %q, want %q", i, rows[0][i], w)
		}
	}

	bare := rows[1]
	if bare[1] != "unknown" {
		t.Errorf("missing plan = %q, want unknown", bare[1])
	}
	if bare[2] != models.NA || bare[3] != models.NA || bare[5] != models.NA {
		t.Errorf("missing fields should render as N/A, got %v", bare)
	}
	if bare[4] != "No" {
		t.Errorf("unverified = %q, want No", bare[4])
	}
	if bare[6] != "0" {
		t.Errorf("zero requests = %q, want 0", bare[6])
	}
}

func TestEmailPlanRows(t *testing.T) {
	rows := EmailPlanRows([]models.User{
		{Email: "a@b.c", Plan: "free"},
		{},
	})
	if len(rows) != 2 || len(rows[0]) != 2 {
		t.Fatalf("unexpected shape %v", rows)
	}
	if rows[0][0] != "a@b.c" || rows[0][1] != "free" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1][0] != models.NA || rows[1][1] != "unknown" {
		t.Errorf("empty user row = %v, want [N/A unknown]", rows[1])
	}
}

func TestWriteUsersXLSX(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 14, 5, 9, 0, time.UTC)
	users := []models.User{
		{Email: "ada@example.com", Plan: "pro", FirstName: "Ada", LastName: "Lovelace", IsVerified: true},
	}

	path, err := WriteUsersXLSX(dir, users, now)
	if err != nil {
		t.Fatalf("WriteUsersXLSX() error = %v", err)
	}
	if filepath.Base(path) != "gaia_users_20260301_140509.xlsx" {
		t.Errorf("unexpected filename %s", filepath.Base(path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Users" {
		t.Fatalf("sheets = %v, want [Users]", sheets)
	}

	rows, err := f.GetRows("Users")
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want header + 1", len(rows))
	}
	if strings.Join(rows[0], "|") != strings.Join(UserHeader, "|") {
		t.Errorf("header = %v, want %v", rows[0], UserHeader)
	}
	if rows[1][0] != "ada@example.com" || rows[1][4] != "Yes" {
		t.Errorf("data row = %v", rows[1])
	}
}

func TestWriteEmailPlanXLSX(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	path, err := WriteEmailPlanXLSX(dir, []models.User{{Email: "a@b.c", Plan: "free"}}, now)
	if err != nil {
		t.Fatalf("WriteEmailPlanXLSX() error = %v", err)
	}
	if filepath.Base(path) != "gaia_emails_plans_20260301_090000.xlsx" {
		t.Errorf("unexpected filename %s", filepath.Base(path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Emails_Plans")
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "a@b.c" || rows[1][1] != "free" {
		t.Errorf("rows = %v", rows)
	}
}

func TestWriteConversationJSON(t *testing.T) {
	dir := t.TempDir()
	conv := models.Conversation{
		ID:     "conv-42",
		UserID: "u1",
		Title:  "Trip plan",
		Messages: []models.Message{
			{Content: "Hello", IsUser: true},
			{Content: "Hi there", IsUser: false},
		},
	}

	path, err := WriteConversationJSON(dir, conv)
	if err != nil {
		t.Fatalf("WriteConversationJSON() error = %v", err)
	}
	if filepath.Base(path) != "gaia_conversation_conv-42.json" {
		t.Errorf("unexpected filename %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var got models.Conversation
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if got.ID != "conv-42" || len(got.Messages) != 2 || got.Messages[0].Content != "Hello" {
		t.Errorf("round-tripped conversation = %+v", got)
	}
}
