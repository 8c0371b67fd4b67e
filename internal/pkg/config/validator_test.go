package config

import (
	"testing"
	"time"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "hourly", schedule: "0 * * * *"},
		{name: "every 15 minutes", schedule: "*/15 * * * *"},
		{name: "weekdays at 09:30", schedule: "30 9 * * 1-5"},
		{name: "empty", schedule: "", wantErr: true},
		{name: "prose", schedule: "every hour", wantErr: true},
		{name: "too few fields", schedule: "0 *", wantErr: true},
		{name: "six fields", schedule: "0 0 0 * * *", wantErr: true},
		{name: "minute out of range", schedule: "61 * * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCronSchedule(%q) err=%v, wantErr=%v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "utc", timezone: "UTC"},
		{name: "shanghai", timezone: "Asia/Shanghai"},
		{name: "new york", timezone: "America/New_York"},
		{name: "empty", timezone: "", wantErr: true},
		{name: "made up zone", timezone: "Mars/Olympus", wantErr: true},
		{name: "utc offset instead of iana name", timezone: "+08:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimezone(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimezone(%q) err=%v, wantErr=%v", tt.timezone, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDuration(t *testing.T) {
	min, max := time.Minute, 4*time.Hour

	tests := []struct {
		name    string
		d       time.Duration
		wantErr bool
	}{
		{name: "middle of range", d: 30 * time.Minute},
		{name: "at minimum", d: min},
		{name: "at maximum", d: max},
		{name: "below minimum", d: 30 * time.Second, wantErr: true},
		{name: "above maximum", d: 10 * time.Hour, wantErr: true},
		{name: "zero", d: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDuration(tt.d, min, max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDuration(%v) err=%v, wantErr=%v", tt.d, err, tt.wantErr)
			}
		})
	}

	t.Run("inverted range rejected", func(t *testing.T) {
		if err := ValidateDuration(time.Minute, time.Hour, time.Minute); err == nil {
			t.Error("expected error for min > max")
		}
	})
}

func TestValidateIntRange(t *testing.T) {
	tests := []struct {
		name        string
		v, min, max int
		wantErr     bool
	}{
		{name: "middle of range", v: 8080, min: 1024, max: 65535},
		{name: "at minimum", v: 1024, min: 1024, max: 65535},
		{name: "at maximum", v: 65535, min: 1024, max: 65535},
		{name: "below minimum", v: 80, min: 1024, max: 65535, wantErr: true},
		{name: "above maximum", v: 70000, min: 1024, max: 65535, wantErr: true},
		{name: "inverted range", v: 5, min: 10, max: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntRange(tt.v, tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIntRange(%d, %d, %d) err=%v, wantErr=%v",
					tt.v, tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	if err := ValidatePositiveDuration(time.Nanosecond); err != nil {
		t.Errorf("one nanosecond should pass, got %v", err)
	}
	if err := ValidatePositiveDuration(30 * time.Minute); err != nil {
		t.Errorf("30m should pass, got %v", err)
	}
	if err := ValidatePositiveDuration(0); err == nil {
		t.Error("zero should fail")
	}
	if err := ValidatePositiveDuration(-time.Second); err == nil {
		t.Error("negative should fail")
	}
}
