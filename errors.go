package mmal

import "errors"

// ErrorOutofmemory when the OS refuses to map a new arena, or mapping
// one would push the heap past its configured capacity.
var ErrorOutofmemory = errors.New("mmal.outofmemory")

// ErrorInvalidsize when Malloc is called with size <= 0, or Realloc
// with size < 0.
var ErrorInvalidsize = errors.New("mmal.invalidsize")

// ErrorInvalidpointer when Realloc is called with the nil Pointer.
var ErrorInvalidpointer = errors.New("mmal.invalidpointer")
