package cli

// Version and Date should be set at build time using ldflags, e.g.:
//
//	-ldflags "-X 'github.com/flarebyte/myapp/cli.Version=0.1.0' -X 'github.com/flarebyte/myapp/cli.Date=2026-10-14'"
var (
	Version string
	Date    string
)
