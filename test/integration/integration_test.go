//go:build integration

// Package integration runs the Gherkin features under features/ against the
// full HTTP stack backed by in-memory SQLite and miniredis.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/smartbiz/backend/test/integration/steps"
)

func TestFeatures(t *testing.T) {
	format := os.Getenv("GODOG_FORMAT")
	if format == "" {
		format = "pretty"
	}

	suite := godog.TestSuite{
		Name:                 "smartbiz-api",
		TestSuiteInitializer: steps.InitializeTestSuite,
		ScenarioInitializer:  steps.InitializeScenario,
		Options: &godog.Options{
			Format:   format,
			Paths:    []string{"features"},
			Tags:     os.Getenv("GODOG_TAGS"),
			Output:   colors.Colored(os.Stdout),
			Strict:   true,
			TestingT: t,
			// Scenarios share one database and must not interleave.
			Concurrency: 1,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
