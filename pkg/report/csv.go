package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/younsl/keyaudit/internal/models"
)

// csvHeader is the fixed column set of the CSV report.
var csvHeader = []string{"user", "key_id", "status", "age_days", "last_used", "risk_tier", "findings"}

// WriteCSV writes one row per access key, unparseable keys included.
// Multiple findings on one key are semicolon-joined.
func WriteCSV(path string, users []models.UserSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV report %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, user := range users {
		for _, f := range user.Findings {
			if err := w.Write(csvRow(f)); err != nil {
				return fmt.Errorf("error writing CSV row for key %s: %w", f.Key.KeyID, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error flushing CSV report %s: %w", path, err)
	}

	return nil
}

func csvRow(f models.KeyFinding) []string {
	lastUsed := "never"
	if f.Key.LastUsedDate != nil {
		lastUsed = f.Key.LastUsedDate.UTC().Format("2006-01-02")
	}

	return []string{
		f.Key.UserName,
		f.Key.KeyID,
		f.Key.Status,
		strconv.Itoa(f.AgeDays),
		lastUsed,
		string(f.Tier),
		strings.Join(f.Findings, ";"),
	}
}

// Filename builds a timestamped report filename so concurrent runs against
// the same account do not collide.
func Filename(accountID, ext string, t time.Time) string {
	return fmt.Sprintf("access_key_audit_%s_%s.%s", accountID, t.Format("20060102-150405"), ext)
}
