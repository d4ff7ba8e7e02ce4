// Package mmal implements a first-fit heap allocator over anonymous
// OS memory mappings, with a limited scope:
//
//  * Types and Functions exported by this package are not thread safe.
//  * Memory is obtained from the OS in arenas of one or more multiples
//    of 128KB, subdivided into variable sized blocks.
//  * Blocks of every arena are threaded into a single circular list,
//    allocation walks that ring and picks the first free block that
//    fits.
//  * Oversized free blocks are split to the requested size, physically
//    adjacent free blocks are merged back together.
//  * Once an arena is mapped from the OS it is not given back until
//    the entire heap is Released.
//  * There is no alignment guarantee on payloads beyond the fixed
//    header granularity.
//
// Heap is an explicit allocator context, empty to begin with, growing
// by one arena whenever no free block can satisfy a request. Callers
// hold Pointer handles to allocated payloads and reach the payload
// bytes through Heap.Bytes(). A Pointer is valid from the Malloc or
// Realloc call that issued it until the Free or Realloc call that
// retires it.
package mmal
