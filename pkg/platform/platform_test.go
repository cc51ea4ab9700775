package platform

import (
	"testing"
)

func TestCurrentArch(t *testing.T) {
	if CurrentArch() == "" {
		t.Error("Expected current architecture to be non-empty")
	}
}

func TestDebianArch(t *testing.T) {
	tests := []struct {
		goarch   string
		goarm    string
		expected string
	}{
		{"amd64", "", ArchAMD64},
		{"x86_64", "", ArchAMD64},
		{"arm64", "", ArchARM64},
		{"arm", "7", ArchARMHF},
		{"arm", "", ArchARMHF},
		{"arm", "5", ArchARMEL},
		{"386", "", ArchI386},
		{"ppc64le", "", ArchPPC64EL},
		{"riscv64", "", ArchRISCV64},
	}

	for _, tt := range tests {
		t.Run(tt.goarch+tt.goarm, func(t *testing.T) {
			if got := DebianArch(tt.goarch, tt.goarm); got != tt.expected {
				t.Errorf("DebianArch(%q, %q) = %q, want %q", tt.goarch, tt.goarm, got, tt.expected)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		pkgArch  string
		sysArch  string
		expected bool
	}{
		{"amd64", "amd64", true},
		{"all", "arm64", true},
		{"", "arm64", true},
		{"arm64", "amd64", false},
	}

	for _, tt := range tests {
		if got := Compatible(tt.pkgArch, tt.sysArch); got != tt.expected {
			t.Errorf("Compatible(%q, %q) = %v, want %v", tt.pkgArch, tt.sysArch, got, tt.expected)
		}
	}
}

func TestIsValidArch(t *testing.T) {
	if !IsValidArch("armhf") {
		t.Error("armhf should be valid")
	}
	if IsValidArch("x86_64") {
		t.Error("x86_64 is not a Debian architecture name")
	}
}
