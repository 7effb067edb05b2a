package core

// Relay failure reasons reported back to the sender via signal-error.
// Failures are contained to the requesting connection; no relay
// problem is ever fatal to the hub.
const (
	RelayErrNotInRoom = "User not found in room"
	RelayErrSelf      = "Cannot signal yourself"
)
