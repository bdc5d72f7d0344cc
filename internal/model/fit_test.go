package model

import "testing"

// TestFitResultParam tests named parameter lookup.
func TestFitResultParam(t *testing.T) {
	t.Parallel()

	result := &FitResult{
		Success:    true,
		ParamNames: []string{"amplitude", "center", "sigma"},
		Params:     []float64{1.5, 2.04e-14, 2.1e-14},
		Errors:     []float64{0.1, 1.0e-16, 2.0e-16},
	}

	testCases := []struct {
		name           string
		expectedValue  float64
		expectedUncert float64
		expectedFound  bool
	}{
		{"amplitude", 1.5, 0.1, true},
		{"center", 2.04e-14, 1.0e-16, true},
		{"sigma", 2.1e-14, 2.0e-16, true},
		{"background", 0, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			value, uncert, ok := result.Param(tc.name)
			if ok != tc.expectedFound {
				t.Fatalf("Param(%q) found = %v, expected %v", tc.name, ok, tc.expectedFound)
			}
			if value != tc.expectedValue {
				t.Errorf("Param(%q) value = %v, expected %v", tc.name, value, tc.expectedValue)
			}
			if uncert != tc.expectedUncert {
				t.Errorf("Param(%q) uncertainty = %v, expected %v", tc.name, uncert, tc.expectedUncert)
			}
		})
	}
}

// TestFitResultParamMismatchedLengths tests that Param does not panic when
// names outnumber values.
func TestFitResultParamMismatchedLengths(t *testing.T) {
	t.Parallel()

	result := &FitResult{
		ParamNames: []string{"a", "b"},
		Params:     []float64{1.0},
		Errors:     []float64{0.5},
	}

	if _, _, ok := result.Param("b"); ok {
		t.Error("Param(\"b\") found = true, expected false for truncated values")
	}
	if value, _, ok := result.Param("a"); !ok || value != 1.0 {
		t.Errorf("Param(\"a\") = %v, %v; expected 1.0, true", value, ok)
	}
}

// TestFitResultSignificance tests the amplitude-over-uncertainty ratio.
func TestFitResultSignificance(t *testing.T) {
	t.Parallel()

	result := &FitResult{
		Success:    true,
		ParamNames: []string{"amp1", "amp2", "amp3"},
		Params:     []float64{100.0, 50.0, 25.0},
		Errors:     []float64{20.0, 0.0, -1.0},
	}

	testCases := []struct {
		name          string
		expectedSig   float64
		expectedFound bool
	}{
		{"amp1", 5.0, true},
		{"amp2", 0, false},
		{"amp3", 0, false},
		{"missing", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sig, ok := result.Significance(tc.name)
			if ok != tc.expectedFound {
				t.Fatalf("Significance(%q) found = %v, expected %v", tc.name, ok, tc.expectedFound)
			}
			if sig != tc.expectedSig {
				t.Errorf("Significance(%q) = %v, expected %v", tc.name, sig, tc.expectedSig)
			}
		})
	}
}

// TestFitResultFailureZeroValue tests that a failed result carries only
// the message.
func TestFitResultFailureZeroValue(t *testing.T) {
	t.Parallel()

	result := &FitResult{Success: false, Message: "singular jacobian"}

	if result.Success {
		t.Error("Success = true, expected false")
	}
	if result.Message != "singular jacobian" {
		t.Errorf("Message = %q, expected %q", result.Message, "singular jacobian")
	}
	if len(result.Params) != 0 || len(result.Errors) != 0 {
		t.Error("failed result should not carry parameter values")
	}
}
