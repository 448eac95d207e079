package calendar

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func staticProvider(holidays []Holiday, err error) ProviderFunc {
	return func(country string, year int) ([]Holiday, error) {
		return holidays, err
	}
}

func TestCompositeProvider_Holidays(t *testing.T) {
	primaryDay := []Holiday{{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Name: "primary", Type: HolidayTypePublic}}
	fallbackDay := []Holiday{{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Name: "fallback", Type: HolidayTypePublic}}
	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		primary  Provider
		fallback Provider
		wantName string
		wantErr  bool
	}{
		{"primary succeeds", staticProvider(primaryDay, nil), staticProvider(fallbackDay, nil), "primary", false},
		{"primary fails", staticProvider(nil, errBoom), staticProvider(fallbackDay, nil), "fallback", false},
		{"primary empty", staticProvider(nil, nil), staticProvider(fallbackDay, nil), "fallback", false},
		{"primary empty, fallback fails", staticProvider(nil, nil), staticProvider(nil, errBoom), "", false},
		{"both fail", staticProvider(nil, errBoom), staticProvider(nil, errBoom), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := NewCompositeProvider(tt.primary, tt.fallback, zap.NewNop())

			holidays, err := cp.Holidays("PL", 2025)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Holidays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errBoom) {
					t.Errorf("Holidays() error = %v, want wrapped primary error", err)
				}
				return
			}

			if tt.wantName == "" {
				if len(holidays) != 0 {
					t.Errorf("Holidays() = %v, want none", holidays)
				}
				return
			}
			if len(holidays) != 1 || holidays[0].Name != tt.wantName {
				t.Errorf("Holidays() = %v, want %s", holidays, tt.wantName)
			}
		})
	}
}

func TestCompositeProvider_FallbackNotMergedWhenPrimaryAnswers(t *testing.T) {
	primary := staticProvider([]Holiday{{Date: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), Name: "Boze Narodzenie", Type: HolidayTypePublic}}, nil)

	fallbackCalls := 0
	fallback := ProviderFunc(func(country string, year int) ([]Holiday, error) {
		fallbackCalls++
		return []Holiday{{Date: time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), Name: "Wigilia", Type: HolidayTypePublic}}, nil
	})

	cp := NewCompositeProvider(primary, fallback, zap.NewNop())

	holidays, err := cp.Holidays("PL", 2024)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}
	if len(holidays) != 1 || holidays[0].Name != "Boze Narodzenie" {
		t.Errorf("Holidays() = %v, want primary result only", holidays)
	}
	if fallbackCalls != 0 {
		t.Errorf("fallback called %d times, want 0", fallbackCalls)
	}
}

func TestCompositeProvider_LoadFallback(t *testing.T) {
	path := writeHolidaysFile(t, "2025-01-06 public Epiphany\n")
	cp := NewCompositeProvider(staticProvider(nil, nil), NewFileProvider(path, zap.NewNop()), zap.NewNop())

	if err := cp.LoadFallback(); err != nil {
		t.Fatalf("LoadFallback() error = %v", err)
	}

	holidays, err := cp.Holidays("IT", 2025)
	if err != nil {
		t.Fatalf("Holidays() error = %v", err)
	}
	if len(holidays) != 1 || holidays[0].Name != "Epiphany" {
		t.Errorf("Holidays() = %v, want Epiphany", holidays)
	}
}
