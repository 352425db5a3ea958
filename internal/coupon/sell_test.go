package coupon

import (
	"testing"
	"time"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "25-12-2026", want: time.Date(2026, time.December, 25, 23, 59, 59, 0, time.Local)},
		{in: "01-01-2027", want: time.Date(2027, time.January, 1, 23, 59, 59, 0, time.Local)},
		{in: "31-02-2026", wantErr: true},
		{in: "2026-12-25", wantErr: true},
		{in: "25/12/2026", wantErr: true},
		{in: "25-13-2026", wantErr: true},
		{in: "00-01-2026", wantErr: true},
		{in: "", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseExpiry(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseExpiry(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseExpiry(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseExpiry(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
