package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/pietrocfn02/neXSim-latest/internal/config"
)

const fixtureJSON = `[
	{"source": "bn:00000001n", "predicate": "instance_of", "target": "bn:00000003n"},
	{"source": "bn:00000002n", "predicate": "instance_of", "target": "bn:00000003n"},
	{"source": "bn:00000003n", "predicate": "subclass_of", "target": "bn:00000004n"}
]`

func withTestCLI(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()

	fixturePath := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(fixturePath, []byte(fixtureJSON), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.GraphDB.Fixture = fixturePath
	cfg.RelationalDB.DSN = ""
}

func TestSummaryCmdPrintsJSON(t *testing.T) {
	withTestCLI(t)

	out := &bytes.Buffer{}
	summaryCmd.SetOut(out)

	err := summaryCmd.RunE(summaryCmd, []string{"bn:00000001n", "bn:00000002n"})
	if err != nil {
		t.Fatalf("summary command failed: %v", err)
	}
}

func TestSummaryCmdRejectsInvalidIdentifier(t *testing.T) {
	withTestCLI(t)

	err := summaryCmd.RunE(summaryCmd, []string{"not-an-id"})
	if err == nil {
		t.Error("expected error for invalid identifier")
	}
}

func TestReportCmdShortCircuitsOnNoArgs(t *testing.T) {
	withTestCLI(t)

	err := reportCmd.RunE(reportCmd, nil)
	if err != nil {
		t.Fatalf("report command with no args should short-circuit, got: %v", err)
	}
}

func TestKernelCmdRequiresTwoEntities(t *testing.T) {
	if kernelCmd.Args == nil {
		t.Fatal("expected kernelCmd to validate argument count")
	}
	if err := kernelCmd.Args(kernelCmd, []string{"bn:00000001n"}); err == nil {
		t.Error("expected error for fewer than two entities")
	}
}
