package llm

import (
	"testing"
)

func temp(v float64) *float64 { return &v }

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		wantErr       bool
		wantType      string
		expectedModel string
		expectedTemp  float64
	}{
		{
			name:          "Default Type",
			settings:      Settings{APIKey: "sk-test"},
			wantType:      "openai",
			expectedModel: DefaultModel,
			expectedTemp:  DefaultTemperature,
		},
		{
			name:          "Explicit OpenAI",
			settings:      Settings{Type: "openai", APIKey: "sk-test", Model: "gpt-test", Temperature: temp(0.9)},
			wantType:      "openai",
			expectedModel: "gpt-test",
			expectedTemp:  0.9,
		},
		{
			name:          "Zero Temperature Kept",
			settings:      Settings{APIKey: "sk-test", Temperature: temp(0)},
			wantType:      "openai",
			expectedModel: DefaultModel,
			expectedTemp:  0,
		},
		{
			name:     "Missing Key",
			settings: Settings{Type: "openai"},
			wantErr:  true,
		},
		{
			name:     "Unknown Provider",
			settings: Settings{Type: "missing", APIKey: "sk-test"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewProvider(tt.settings)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if got.Name() != tt.wantType {
				t.Errorf("NewProvider() Name = %v, want %v", got.Name(), tt.wantType)
			}
			o, ok := got.(*OpenAIProvider)
			if !ok {
				t.Fatalf("NewProvider() returned %T", got)
			}
			if o.Model != tt.expectedModel {
				t.Errorf("OpenAIProvider.Model = %v, want %v", o.Model, tt.expectedModel)
			}
			if o.Temperature != tt.expectedTemp {
				t.Errorf("OpenAIProvider.Temperature = %v, want %v", o.Temperature, tt.expectedTemp)
			}
		})
	}
}
