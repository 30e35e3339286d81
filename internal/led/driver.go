// Package led holds the byte transports that carry packets to the AniMe and
// Aura devices.
package led

// Driver is a packet sink. WriteBytes sends one complete packet.
type Driver interface {
	WriteBytes(p []byte) error
	Close() error
}
