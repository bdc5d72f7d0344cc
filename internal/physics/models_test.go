package physics

import "testing"

// TestDijetModelIsSumOfComponents tests the composite against its parts
// over the analysis mass range.
func TestDijetModelIsSumOfComponents(t *testing.T) {
	t.Parallel()

	params := []float64{1e6, 0.0015, 1e8, 5e3, 2300.0, 50.0, 3e3, 3100.0, 60.0}

	for _, m := range []float64{1500.0, 1600.0, 2300.0, 3100.0, 3999.5} {
		expected := DijetBackground(m, params[0], params[1], params[2]) +
			BreitWigner(m, params[3], params[4], params[5]) +
			BreitWigner(m, params[6], params[7], params[8])
		if got := DijetModel(m, params); !relEqual(got, expected, 1e-12) {
			t.Errorf("at m=%g: got %g, expected %g", m, got, expected)
		}
	}
}

// TestDijetModelParamCount tests the layout contract.
func TestDijetModelParamCount(t *testing.T) {
	t.Parallel()

	names := DijetParamNames()
	if len(names) != DijetParams {
		t.Fatalf("got %d names, expected %d", len(names), DijetParams)
	}
	if names[0] != "a" || names[4] != "center1" || names[8] != "width2" {
		t.Errorf("unexpected layout: %v", names)
	}
}

// TestCorrelationModelFlatWithoutSignal tests that zero amplitude leaves
// only the background.
func TestCorrelationModelFlatWithoutSignal(t *testing.T) {
	t.Parallel()

	params := []float64{0, 2.04e-14, 2.1e-15, 0.797}
	for _, tt := range []float64{-5e-14, 0, 2.04e-14, 5e-14} {
		if got := CorrelationModel(tt, params); !relEqual(got, 0.797, 1e-12) {
			t.Errorf("at t=%g: got %g, expected background 0.797", tt, got)
		}
	}
}

// TestCorrelationModelPeak tests the value at the correlation time.
func TestCorrelationModelPeak(t *testing.T) {
	t.Parallel()

	params := []float64{0.203, 2.04e-14, 2.1e-15, 0.797}
	expected := 0.203 + 0.797
	if got := CorrelationModel(2.04e-14, params); !relEqual(got, expected, 1e-12) {
		t.Errorf("peak value = %g, expected %g", got, expected)
	}

	names := CorrelationParamNames()
	if len(names) != CorrelationParams {
		t.Fatalf("got %d names, expected %d", len(names), CorrelationParams)
	}
	if names[1] != "t0" {
		t.Errorf("names[1] = %q, expected %q", names[1], "t0")
	}
}

// TestInfraredModelIsSumOfComponents tests the composite against its
// parts over the spectral range.
func TestInfraredModelIsSumOfComponents(t *testing.T) {
	t.Parallel()

	params := []float64{
		0.1, -0.05, 0.02,
		1.0, 0.203, 0.004, 0.008,
		0.5, 0.406, 0.008, 0.016,
		0.3, 0.609, 0.012, 0.024,
	}

	for _, e := range []float64{0.1, 0.203, 0.406, 0.609, 0.8} {
		expected := QuadraticBackground(e, params[0], params[1], params[2]) +
			PseudoVoigt(e, params[3], params[4], params[5], params[6]) +
			PseudoVoigt(e, params[7], params[8], params[9], params[10]) +
			PseudoVoigt(e, params[11], params[12], params[13], params[14])
		if got := InfraredModel(e, params); !relEqual(got, expected, 1e-12) {
			t.Errorf("at e=%g: got %g, expected %g", e, got, expected)
		}
	}
}

// TestInfraredModelBackgroundOnly tests the degenerate three-parameter
// vector.
func TestInfraredModelBackgroundOnly(t *testing.T) {
	t.Parallel()

	params := []float64{0.1, -0.05, 0.02}
	e := 0.4
	expected := QuadraticBackground(e, 0.1, -0.05, 0.02)
	if got := InfraredModel(e, params); !relEqual(got, expected, 1e-12) {
		t.Errorf("got %g, expected %g", got, expected)
	}
}

// TestInfraredParamNames tests the generated layout for three peaks.
func TestInfraredParamNames(t *testing.T) {
	t.Parallel()

	names := InfraredParamNames(3)
	if len(names) != 15 {
		t.Fatalf("got %d names, expected 15", len(names))
	}
	if names[3] != "amp1" || names[8] != "cen2" || names[14] != "gam3" {
		t.Errorf("unexpected layout: %v", names)
	}
}
