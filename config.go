package mmal

import s "github.com/bnclabs/gosettings"

// Pagesize granularity, in bytes, to which arena requests are rounded
// up before mapping memory from the OS.
const Pagesize = int64(128 * 1024)

// Hdrsize bytes reserved in the mapping ahead of every block payload.
// Split and merge account sizes in terms of this overhead.
const Hdrsize = int64(24)

// Arenasize bytes reserved at the start of every arena mapping.
const Arenasize = int64(16)

// Maxheapsize maximum capacity manageable by a single heap. Can be
// used as default capacity for New().
const Maxheapsize = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Heap configurable parameters and default settings.
//
// "allocator" (string, default: "firstfit")
//		Placement policy, "firstfit" is the only supported policy.
func Defaultsettings() s.Settings {
	return s.Settings{
		"allocator": "firstfit",
	}
}
