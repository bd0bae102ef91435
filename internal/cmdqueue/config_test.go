package cmdqueue

import (
	"testing"

	"github.com/angrypants/cmdq/internal/config"
)

// TestDefaultConfig validates the default queue configuration
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CapacityBytes != config.DefaultCapacityBytes {
		t.Errorf("CapacityBytes = %d, want %d", cfg.CapacityBytes, config.DefaultCapacityBytes)
	}
	if cfg.FailurePolicy != FailurePolicyCollect {
		t.Errorf("FailurePolicy = %q, want %q", cfg.FailurePolicy, FailurePolicyCollect)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
	if got, want := cfg.SlotCapacity(), (10485760-HeaderSize-1)/SlotSize; got != want {
		t.Errorf("SlotCapacity() = %d, want %d", got, want)
	}
}

// TestConfigValidate checks capacity bounds and policy names
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", Config{CapacityBytes: 10 << 20, FailurePolicy: FailurePolicyCollect}, false},
		{"halt policy", Config{CapacityBytes: 4096, FailurePolicy: FailurePolicyHalt}, false},
		{"minimum capacity", Config{CapacityBytes: MinCapacityBytes, FailurePolicy: FailurePolicyCollect}, false},
		{"maximum capacity", Config{CapacityBytes: MaxCapacityBytes, FailurePolicy: FailurePolicyCollect}, false},
		{"below minimum", Config{CapacityBytes: MinCapacityBytes - 1, FailurePolicy: FailurePolicyCollect}, true},
		{"zero capacity", Config{CapacityBytes: 0, FailurePolicy: FailurePolicyCollect}, true},
		{"above maximum", Config{CapacityBytes: MaxCapacityBytes + 1, FailurePolicy: FailurePolicyCollect}, true},
		{"empty policy", Config{CapacityBytes: 4096}, true},
		{"unknown policy", Config{CapacityBytes: 4096, FailurePolicy: "retry"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestNewRejectsInvalidConfig checks construction fails without allocating
func TestNewRejectsInvalidConfig(t *testing.T) {
	q, err := NewWithCapacity(HeaderSize)
	if err == nil {
		t.Fatal("NewWithCapacity(HeaderSize) expected error")
	}
	if q != nil {
		t.Error("NewWithCapacity returned a queue alongside an error")
	}
}

// TestParseFailurePolicy checks flag parsing of failure policies
func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    FailurePolicy
		wantErr bool
	}{
		{"collect", FailurePolicyCollect, false},
		{"halt", FailurePolicyHalt, false},
		{"HALT", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFailurePolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFailurePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFailurePolicy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
