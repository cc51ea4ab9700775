package platform

// Debian architecture names.
const (
	ArchAMD64   = "amd64"
	ArchARM64   = "arm64"
	ArchARMHF   = "armhf"
	ArchARMEL   = "armel"
	ArchI386    = "i386"
	ArchPPC64EL = "ppc64el"
	ArchS390X   = "s390x"
	ArchRISCV64 = "riscv64"

	// ArchAll marks architecture-independent packages.
	ArchAll = "all"
)

// ValidArch returns the Debian architectures the bridge knows about.
func ValidArch() []string {
	return []string{
		ArchAMD64,
		ArchARM64,
		ArchARMHF,
		ArchARMEL,
		ArchI386,
		ArchPPC64EL,
		ArchS390X,
		ArchRISCV64,
	}
}
