package problemgen

import "testing"

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Validator: "test-validator",
		Message:   "something went wrong",
	}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	names := []string{"structural", "option-count", "answer-count", "dedup"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Temperature != 0.7 {
		t.Errorf("expected Temperature 0.7, got %f", cfg.Temperature)
	}
	if cfg.MaxPriorQuestions != 8 {
		t.Errorf("expected MaxPriorQuestions 8, got %d", cfg.MaxPriorQuestions)
	}
}
