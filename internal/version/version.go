package version

const (
	AppName        = "slashery"
	AppDescription = "Typed slash command decoding and dispatch for Discord bots."
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"
