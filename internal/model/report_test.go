package model

import (
	"errors"
	"testing"
	"time"
)

// TestNewExperimentReport tests the ExperimentReport constructor.
func TestNewExperimentReport(t *testing.T) {
	t.Parallel()

	before := time.Now()
	report := NewExperimentReport(ExperimentDijet, 42)
	after := time.Now()

	if report.Experiment != ExperimentDijet {
		t.Errorf("Experiment = %v, expected %v", report.Experiment, ExperimentDijet)
	}
	if report.ExperimentName != "dijet" {
		t.Errorf("ExperimentName = %q, expected %q", report.ExperimentName, "dijet")
	}
	if report.Seed != 42 {
		t.Errorf("Seed = %d, expected 42", report.Seed)
	}
	if report.StartedAt.Before(before) || report.StartedAt.After(after) {
		t.Errorf("StartedAt = %v, expected between %v and %v", report.StartedAt, before, after)
	}
	if report.Fit != nil {
		t.Error("Fit should be nil on a fresh report")
	}
}

// TestExperimentReportAddPerformedStep tests step tracking.
func TestExperimentReportAddPerformedStep(t *testing.T) {
	t.Parallel()

	report := NewExperimentReport(ExperimentInfrared, 1)
	report.AddPerformedStep("simulate")
	report.AddPerformedStep("fit")

	expected := []string{"simulate", "fit"}
	if len(report.PerformedSteps) != len(expected) {
		t.Fatalf("got %d steps, expected %d", len(report.PerformedSteps), len(expected))
	}
	for i, name := range expected {
		if report.PerformedSteps[i] != name {
			t.Errorf("PerformedSteps[%d] = %q, expected %q", i, report.PerformedSteps[i], name)
		}
	}
}

// TestExperimentReportSetError tests error recording.
func TestExperimentReportSetError(t *testing.T) {
	t.Parallel()

	report := NewExperimentReport(ExperimentPumpProbe, 7)
	testErr := errors.New("detector offline")
	report.SetError(testErr)

	if !errors.Is(report.Error, testErr) {
		t.Errorf("Error = %v, expected %v", report.Error, testErr)
	}
	if report.ErrorMessage != "detector offline" {
		t.Errorf("ErrorMessage = %q, expected %q", report.ErrorMessage, "detector offline")
	}

	report.SetError(nil)
	if report.Error != nil {
		t.Errorf("Error = %v, expected nil", report.Error)
	}
}

// TestExperimentReportFitSucceeded tests the fit success discriminant.
func TestExperimentReportFitSucceeded(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		fit      *FitResult
		expected bool
	}{
		{"nil_fit", nil, false},
		{"failed_fit", &FitResult{Success: false, Message: "did not converge"}, false},
		{"converged_fit", &FitResult{Success: true}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			report := NewExperimentReport(ExperimentDijet, 42)
			report.Fit = tc.fit
			if report.FitSucceeded() != tc.expected {
				t.Errorf("FitSucceeded() = %v, expected %v", report.FitSucceeded(), tc.expected)
			}
		})
	}
}

// TestExperimentReportMaxSignificance tests the maximum significance helper.
func TestExperimentReportMaxSignificance(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		significances []LocalSignificance
		expected      float64
	}{
		{"empty", nil, 0},
		{
			"single",
			[]LocalSignificance{{Prediction: "M_coh", Value: 1.2}},
			1.2,
		},
		{
			"picks_largest",
			[]LocalSignificance{
				{Prediction: "M_coh", Value: 1.2},
				{Prediction: "M_kappa", Value: 3.4},
			},
			3.4,
		},
		{
			"all_negative",
			[]LocalSignificance{{Prediction: "M_coh", Value: -0.5}},
			0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			report := NewExperimentReport(ExperimentDijet, 42)
			report.LocalSignificances = tc.significances
			if got := report.MaxSignificance(); got != tc.expected {
				t.Errorf("MaxSignificance() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

// TestExperimentReportMatchFor tests per-prediction match lookup.
func TestExperimentReportMatchFor(t *testing.T) {
	t.Parallel()

	report := NewExperimentReport(ExperimentInfrared, 42)
	report.Matches = []PeakMatch{
		{Prediction: "E1", Predicted: 0.203, Measured: 0.2031},
		{Prediction: "E3", Predicted: 0.609, Measured: 0.6085},
	}

	if m, ok := report.MatchFor("E3"); !ok || m.Measured != 0.6085 {
		t.Errorf("MatchFor(\"E3\") = %+v, %v; expected measured 0.6085, true", m, ok)
	}
	if _, ok := report.MatchFor("E2"); ok {
		t.Error("MatchFor(\"E2\") found = true, expected false")
	}
}
