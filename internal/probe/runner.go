package probe

import (
	"context"
	"strings"
	"time"

	"github.com/okian/roster/internal/domain/geo"
	"github.com/okian/roster/pkg/logger"
	"github.com/rotisserie/eris"
)

// Run logs in, fetches the employee list and both views, checks the views
// against a local recomputation using table, and logs out.
func Run(ctx context.Context, config *Config, table geo.Lookuper) (*Report, error) {
	log := logger.Named("probe")
	report := &Report{StartTime: time.Now()}

	log.Info(ctx, "starting roster probe",
		logger.String("baseURL", config.BaseURL),
		logger.String("username", config.Username),
		logger.String("timeout", config.Timeout.String()))

	client := NewClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return report, err
	}

	// Step 2: Open a session
	if _, err := client.Login(ctx, config.Username, config.Password); err != nil {
		return report, eris.Wrap(err, "login")
	}
	defer func() {
		if err := client.Logout(context.WithoutCancel(ctx)); err != nil {
			log.Warn(ctx, "logout failed", logger.Error(err))
		}
	}()

	// Step 3: Fetch the list and both views
	list, err := client.Employees(ctx)
	if err != nil {
		return report, err
	}
	report.Employees = len(list)

	chart, err := client.SalaryChart(ctx)
	if err != nil {
		return report, err
	}
	cityMap, err := client.CityMap(ctx)
	if err != nil {
		return report, err
	}

	// Step 4: Verify
	employees := toModel(list)
	verifySalary(employees, chart, report)
	verifyMap(employees, table, cityMap, report)

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	displayReport(ctx, log, config, report)

	if !report.OK() {
		return report, eris.Wrapf(ErrMismatch, "%d mismatches: %s", len(report.Mismatches), strings.Join(report.Mismatches, "; "))
	}
	return report, nil
}

// displayReport logs the final statistics.
func displayReport(ctx context.Context, log logger.Logger, config *Config, report *Report) {
	if config.Verbose {
		for _, m := range report.Mismatches {
			log.Warn(ctx, "mismatch", logger.String("detail", m))
		}
	}
	log.Info(ctx, "probe finished",
		logger.Int("employees", report.Employees),
		logger.Int("seriesChecked", report.SeriesChecked),
		logger.Int("clustersChecked", report.ClustersChecked),
		logger.Int("mismatches", len(report.Mismatches)),
		logger.String("duration", report.Duration.String()),
		logger.Bool("ok", report.OK()))
}
