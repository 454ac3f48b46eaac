package build

// Injected at build time, ie
// go build -ldflags "-X github.com/bornholm/mountns/internal/build.LongVersion=$(git describe --always)"
var (
	LongVersion = "unknown"
)
