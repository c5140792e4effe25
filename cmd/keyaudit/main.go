package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/younsl/keyaudit/internal/models"
	"github.com/younsl/keyaudit/internal/version"
	"github.com/younsl/keyaudit/pkg/analyzer"
	"github.com/younsl/keyaudit/pkg/aws"
	"github.com/younsl/keyaudit/pkg/formatter"
	"github.com/younsl/keyaudit/pkg/report"
)

var (
	profile             string
	region              string
	outputDir           string
	staleDays           int
	infrequentDays      int
	maxAgeDays          int
	complianceThreshold float64
	showVersion         bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "keyaudit",
		Short: "CLI tool to audit AWS IAM access key lifecycle compliance",
		Long: `keyaudit scans the IAM users of an AWS account, classifies every
access key by lifecycle risk (age, last use, rotation status) and writes
JSON and CSV compliance reports next to a console summary.`,
		Run: func(cmd *cobra.Command, args []string) {
			// If version flag is set, print version info and exit
			if showVersion {
				fmt.Println(version.Get())
				return
			}

			policy := models.DefaultRiskPolicy()
			policy.StaleDays = staleDays
			policy.InfrequentDays = infrequentDays
			policy.MaxAgeDays = maxAgeDays
			policy.ComplianceThreshold = complianceThreshold

			if err := runAssessment(policy); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().StringVarP(&profile, "profile", "p", "", "Named AWS profile (default: default credential chain)")
	rootCmd.Flags().StringVarP(&region, "region", "r", "us-east-1", "AWS region for SDK configuration")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for the JSON and CSV reports")
	rootCmd.Flags().IntVar(&staleDays, "stale-days", 90, "Days of inactivity before a key counts as stale")
	rootCmd.Flags().IntVar(&infrequentDays, "infrequent-days", 30, "Days of inactivity before a key counts as infrequently used")
	rootCmd.Flags().IntVar(&maxAgeDays, "max-age-days", 365, "Maximum key age allowed by the rotation policy")
	rootCmd.Flags().Float64Var(&complianceThreshold, "compliance-threshold", 90, "Minimum compliance rate (percent) for a COMPLIANT verdict")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// runAssessment executes the fixed audit sequence: connect, fetch the
// inventory, classify, aggregate, write both reports, print the summary.
// Session or inventory failures abort before any report file exists.
func runAssessment(policy models.RiskPolicy) error {
	ctx := context.Background()

	fmt.Println("Starting AWS access key lifecycle assessment ...")
	scanStartTime := time.Now()

	sess, err := aws.Connect(ctx, profile, region)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Connected to AWS account %s\n", sess.AccountID)

	inventory, err := aws.NewInventoryClient(sess).FetchInventory(ctx)
	if err != nil {
		return err
	}

	users := analyzer.AnalyzeInventory(inventory, scanStartTime, policy)
	account := analyzer.SummarizeAccount(users, policy)

	jsonPath := filepath.Join(outputDir, report.Filename(sess.AccountID, "json", scanStartTime))
	if err := report.WriteJSON(jsonPath, report.Build(sess.AccountID, scanStartTime, users, account, policy)); err != nil {
		return err
	}

	csvPath := filepath.Join(outputDir, report.Filename(sess.AccountID, "csv", scanStartTime))
	if err := report.WriteCSV(csvPath, users); err != nil {
		return err
	}

	fmt.Printf("✓ Reports written: %s, %s\n\n", jsonPath, csvPath)

	formatter.PrintFindingsTable(os.Stdout, users)
	formatter.PrintAccountSummary(os.Stdout, sess.AccountID, account)

	scanDuration := time.Since(scanStartTime)
	fmt.Printf("\n✓ Access keys analyzed - Completed in %.2f seconds\n", scanDuration.Seconds())

	return nil
}
