package version

// Set at build time, e.g.
//	go build -ldflags "-X github.com/WinterBoy-Galois/Stake-Delegation-Contract/version.GitHash=$(git rev-parse HEAD)"
var (
	Version   = "0.1.0"
	GitHash   = "unknown"
	Timestamp = "unknown"
)
