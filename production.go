//go:build !debug

package mmal

func poisonblock(payload []byte) {
}
