package update

import (
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Version
		wantErr bool
	}{
		{
			name:  "simple version",
			input: "8.2.0",
			want:  &Version{Major: 8, Minor: 2, Patch: 0},
		},
		{
			name:  "version with v prefix",
			input: "v8.2.0",
			want:  &Version{Major: 8, Minor: 2, Patch: 0},
		},
		{
			name:  "version with prerelease",
			input: "9.0.0-rc.1",
			want:  &Version{Major: 9, Minor: 0, Patch: 0, Prerelease: "rc.1"},
		},
		{
			name:  "version with beta",
			input: "v9.1.0-beta.2",
			want:  &Version{Major: 9, Minor: 1, Patch: 0, Prerelease: "beta.2"},
		},
		{
			name:    "invalid format",
			input:   "invalid",
			wantErr: true,
		},
		{
			name:    "missing patch",
			input:   "1.0",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if *got != *tt.want {
				t.Errorf("ParseVersion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		name string
		v1   string
		v2   string
		want int
	}{
		{"equal versions", "1.2.3", "1.2.3", 0},
		{"major greater", "2.0.0", "1.9.9", 1},
		{"minor greater", "1.3.0", "1.2.9", 1},
		{"patch greater", "1.2.4", "1.2.3", 1},
		{"lesser", "1.2.3", "1.2.4", -1},
		{"stable beats prerelease", "1.0.0", "1.0.0-rc.1", 1},
		{"prerelease below stable", "1.0.0-rc.1", "1.0.0", -1},
		{"prerelease lexicographic", "1.0.0-beta", "1.0.0-alpha", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v1, err := ParseVersion(tt.v1)
			if err != nil {
				t.Fatalf("ParseVersion(%q) error = %v", tt.v1, err)
			}
			v2, err := ParseVersion(tt.v2)
			if err != nil {
				t.Fatalf("ParseVersion(%q) error = %v", tt.v2, err)
			}
			if got := v1.Compare(v2); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	v := &Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1"}
	if got := v.String(); got != "1.2.3-rc.1" {
		t.Errorf("String() = %q, want %q", got, "1.2.3-rc.1")
	}
}

func TestNormalizeVersion(t *testing.T) {
	if got := NormalizeVersion("v1.2.3"); got != "1.2.3" {
		t.Errorf("NormalizeVersion(v1.2.3) = %q, want 1.2.3", got)
	}
	if got := NormalizeVersion("1.2.3"); got != "1.2.3" {
		t.Errorf("NormalizeVersion(1.2.3) = %q, want 1.2.3", got)
	}
}
