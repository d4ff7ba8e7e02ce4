//go:build debug

package mmal

// poisonblock fills a freed payload with a recognizable pattern, so
// reads through a stale Pointer show up immediately.
func poisonblock(payload []byte) {
	for i := range payload {
		payload[i] = 0xff
	}
}
