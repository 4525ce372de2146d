package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePort(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int
		wantErr string
	}{
		{name: "int", raw: 3000, want: 3000},
		{name: "lower bound", raw: 1, want: 1},
		{name: "upper bound", raw: 65535, want: 65535},
		{name: "whole float", raw: 3000.0, want: 3000},
		{name: "uint64", raw: uint64(8080), want: 8080},
		{name: "digit string", raw: "3000", want: 3000},
		{name: "digit string with spaces", raw: " 4000 ", want: 4000},
		{name: "zero", raw: 0, wantErr: "out of range"},
		{name: "negative", raw: -1, wantErr: "out of range"},
		{name: "too large", raw: 70000, wantErr: "port 70000 is out of range 1-65535"},
		{name: "huge string", raw: "99999999999999999999", wantErr: "out of range"},
		{name: "fractional", raw: 3000.5, wantErr: "must be an integer"},
		{name: "fractional string", raw: "3000.5", wantErr: "must be numeric"},
		{name: "hex string", raw: "0x50", wantErr: "must be numeric"},
		{name: "word", raw: "http", wantErr: "must be numeric"},
		{name: "bool", raw: true, wantErr: "must be an integer"},
		{name: "nan", raw: math.NaN(), wantErr: "must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePort(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNonNegativeInt(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int
		wantErr bool
	}{
		{name: "zero", raw: 0, want: 0},
		{name: "int", raw: 100, want: 100},
		{name: "whole float", raw: 86400.0, want: 86400},
		{name: "negative", raw: -5, wantErr: true},
		{name: "fractional", raw: 1.5, wantErr: true},
		{name: "string", raw: "100", wantErr: true},
		{name: "too large", raw: int64(math.MaxInt32) + 1, wantErr: true},
		{name: "nil", raw: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NonNegativeInt(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
