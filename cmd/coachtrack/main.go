// Command coachtrack opens the engagement store, optionally seeds demo
// data, and prints the analytics dashboard for the requested filters. With
// -export it also renders the dashboard into stored report artifacts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"coachtrack/internal/adapters/reports"
	"coachtrack/internal/analytics"
	"coachtrack/internal/blob"
	"coachtrack/internal/core"
	"coachtrack/pkg/domain"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "coachtrack:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("coachtrack", flag.ContinueOnError)
	dateRange := fs.String("range", "", "date range filter: thisMonth|thisQuarter|thisYear (empty = all time)")
	coacheeType := fs.String("coachee-type", analytics.CoacheeTypeAll, "coachee type filter: Individual|Team|Group|all")
	payments := fs.String("payments", "", "comma separated payment types to keep (empty = all)")
	seed := fs.Bool("seed", false, "seed demo data when the store is empty")
	export := fs.String("export", "", "comma separated report formats to export: json,csv")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := core.OpenPersistentStore(core.DefaultRulesEngine())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	service := core.NewService(store)

	ctx := context.Background()
	if *seed {
		seeded, err := service.SeedDemo(ctx)
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		if seeded {
			fmt.Fprintln(out, "seeded demo data")
		}
	}

	params := analytics.Params{
		DateRange:   *dateRange,
		CoacheeType: *coacheeType,
	}
	for _, p := range splitList(*payments) {
		params.PaymentTypes = append(params.PaymentTypes, domain.PaymentType(p))
	}

	dataset := analytics.FromStore(store)
	dashboard := analytics.BuildDashboard(dataset, params, time.Now())

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dashboard); err != nil {
		return err
	}

	if *export != "" {
		return exportReports(ctx, store, params, splitList(*export), out)
	}
	return nil
}

func exportReports(ctx context.Context, store domain.PersistentStore, params analytics.Params, formats []string, out io.Writer) error {
	blobs, err := blob.Open(ctx)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}
	worker := reports.NewWorker(store, blobs, nil)
	worker.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = worker.Stop(stopCtx)
	}()

	req := reports.Request{Params: params, RequestedBy: core.DemoEmail}
	for _, f := range formats {
		req.Formats = append(req.Formats, reports.Format(f))
	}
	record, err := worker.Enqueue(ctx, req)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		current, ok := worker.Get(record.ID)
		if !ok {
			return fmt.Errorf("report %s disappeared", record.ID)
		}
		switch current.Status {
		case reports.StatusSucceeded:
			for _, artifact := range current.Artifacts {
				fmt.Fprintf(out, "exported %s (%d bytes) -> %s\n", artifact.Format, artifact.SizeBytes, artifact.Key)
			}
			return nil
		case reports.StatusFailed:
			return fmt.Errorf("report export failed: %s", current.Error)
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("report export timed out")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
