package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors        int
	Redemptions        int
	RedemptionsDenied  int
	Registrations      int
	Verifications      int
	AdminLogins        int
	AdminLoginFailures int
	OfferActivity      map[string]int
	ErrorPatterns      map[string]int
}

// Summarizes today's log files. Run from the repo root: go run scripts/analyze_logs.go
func main() {
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &LogStats{
		OfferActivity: make(map[string]int),
		ErrorPatterns: make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if strings.Contains(line, "Login failed") {
			stats.AdminLoginFailures++
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "redeemed, redemption ID") {
			stats.Redemptions++
			extractOfferActivity(line, stats)
		}
		if strings.Contains(line, "Redemption rejected") {
			stats.RedemptionsDenied++
		}
		if strings.Contains(line, "Created email registration") {
			stats.Registrations++
		}
		if strings.Contains(line, "verified") {
			stats.Verifications++
		}
		if strings.Contains(line, "logged in") {
			stats.AdminLogins++
		}
	}
}

func extractOfferActivity(line string, stats *LogStats) {
	// "Offer SAVE10 redeemed, redemption ID 7, total 3"
	offerRegex := regexp.MustCompile(`Offer (\S+) redeemed`)
	if m := offerRegex.FindStringSubmatch(line); m != nil {
		stats.OfferActivity[m[1]]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	parts := strings.Split(line, ":")
	if len(parts) > 1 {
		errorMsg := strings.TrimSpace(parts[1])
		stats.ErrorPatterns[errorMsg]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Redemption Statistics:")
	fmt.Printf("   Successful Redemptions: %d\n", stats.Redemptions)
	fmt.Printf("   Rejected Redemptions: %d\n", stats.RedemptionsDenied)

	fmt.Println("\n2. Email Registrations:")
	fmt.Printf("   New Registrations: %d\n", stats.Registrations)
	fmt.Printf("   Verifications: %d\n", stats.Verifications)

	fmt.Println("\n3. Admin Activity:")
	fmt.Printf("   Logins: %d\n", stats.AdminLogins)
	fmt.Printf("   Failed Logins: %d\n", stats.AdminLoginFailures)

	fmt.Println("\n4. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)

	fmt.Println("\n5. Most Redeemed Offers:")
	printTopOffers(stats.OfferActivity, 5)

	fmt.Println("\n6. Most Common Errors:")
	printTopErrors(stats.ErrorPatterns, 5)
}

func printTopOffers(offers map[string]int, limit int) {
	type offerActivity struct {
		code  string
		count int
	}

	var activities []offerActivity
	for code, count := range offers {
		activities = append(activities, offerActivity{code, count})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].count > activities[j].count
	})

	for i, activity := range activities {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d redemptions\n", activity.code, activity.count)
	}
}

func printTopErrors(errors map[string]int, limit int) {
	type errorCount struct {
		error string
		count int
	}

	var errorList []errorCount
	for err, count := range errors {
		errorList = append(errorList, errorCount{err, count})
	}

	sort.Slice(errorList, func(i, j int) bool {
		return errorList[i].count > errorList[j].count
	})

	for i, err := range errorList {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d occurrences\n", err.error, err.count)
	}
}
