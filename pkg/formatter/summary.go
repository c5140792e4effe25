package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/younsl/keyaudit/internal/models"
)

// PrintFindingsTable writes the per-key findings in a table format
func PrintFindingsTable(writer io.Writer, users []models.UserSummary) {
	var findings []models.KeyFinding
	for _, user := range users {
		findings = append(findings, user.Findings...)
	}

	if len(findings) == 0 {
		fmt.Fprintln(writer, "No access keys found.")
		return
	}

	// Sort keys: worst tier first, then by age (descending)
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Tier != findings[j].Tier {
			return findings[i].Tier.Rank() > findings[j].Tier.Rank()
		}
		return findings[i].AgeDays > findings[j].AgeDays
	})

	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', tabwriter.TabIndent)

	fmt.Fprintln(w, "USER\tKEY ID\tSTATUS\tAGE (DAYS)\tLAST USED\tRISK TIER\tFINDINGS")

	for _, f := range findings {
		lastUsedStr := "Never"
		if f.Key.LastUsedDate != nil {
			lastUsedStr = formatDate(*f.Key.LastUsedDate)
		}

		findingsStr := "-"
		if len(f.Findings) > 0 {
			findingsStr = f.Findings[0]
			if len(f.Findings) > 1 {
				findingsStr = fmt.Sprintf("%s (+%d more)", f.Findings[0], len(f.Findings)-1)
			}
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			f.Key.UserName,
			f.Key.KeyID,
			f.Key.Status,
			f.AgeDays,
			lastUsedStr,
			f.Tier,
			findingsStr,
		)
	}

	w.Flush()
}

// PrintAccountSummary writes the end-of-run recap of the account rollup.
func PrintAccountSummary(writer io.Writer, accountID string, summary models.AccountSummary) {
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, "ASSESSMENT SUMMARY")

	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintf(w, "Account ID\t%s\n", accountID)
	fmt.Fprintf(w, "Total Users\t%d\n", summary.TotalUsers)
	fmt.Fprintf(w, "Users With Keys\t%d\n", summary.UsersWithKeys)
	fmt.Fprintf(w, "Total Access Keys\t%d\n", summary.TotalKeys)
	fmt.Fprintf(w, "Critical Risk Keys\t%d\n", summary.CriticalKeys)
	fmt.Fprintf(w, "High Risk Keys\t%d\n", summary.HighRiskKeys)
	fmt.Fprintf(w, "Medium Risk Keys\t%d\n", summary.MediumRiskKeys)
	fmt.Fprintf(w, "Never Used Keys\t%d\n", summary.NeverUsedKeys)
	if summary.UnparseableKeys > 0 {
		fmt.Fprintf(w, "Unparseable Keys\t%d\n", summary.UnparseableKeys)
	}
	fmt.Fprintf(w, "Compliance Rate\t%.1f%%\n", summary.ComplianceRate)
	w.Flush()

	fmt.Fprintf(writer, "Overall Status: %s\n", colorizeStatus(summary.OverallStatus))

	if summary.OverallStatus == models.StatusCompliant {
		fmt.Fprintln(writer, "Access key management meets compliance requirements.")
	} else {
		fmt.Fprintln(writer, "Access key management requires attention - see report details.")
	}
}

func colorizeStatus(status string) string {
	if status == models.StatusCompliant {
		return color.GreenString(status)
	}
	return color.RedString(status)
}

// formatDate renders a timestamp with its recency, e.g. "2023-04-01 (3 days ago)"
func formatDate(t time.Time) string {
	daysAgo := int(time.Since(t).Hours() / 24)
	if daysAgo < 1 {
		return "Today"
	}
	return fmt.Sprintf("%s (%s)", t.Format("2006-01-02"), humanize.Time(t))
}
