// Package section defines the fixed binary layout of a UMS envelope.
//
// An envelope is a 16-byte header, the (optionally compressed) payload and
// an 8-byte xxHash64 checksum of the uncompressed payload:
//
//	┌──────────────────────────────────────────────┐
//	│ Header (16 bytes)                            │
//	│   0-1   magic (always little-endian)         │
//	│   2-3   flags (bit 0: big-endian payload)    │
//	│   4     encoding type                        │
//	│   5     compression type                     │
//	│   6-7   reserved, zero                       │
//	│   8-11  payload size (as stored)             │
//	│   12-15 raw payload size (uncompressed)      │
//	├──────────────────────────────────────────────┤
//	│ Payload (payload size bytes)                 │
//	├──────────────────────────────────────────────┤
//	│ Checksum (8 bytes)                           │
//	└──────────────────────────────────────────────┘
//
// Every multi-byte field after the magic and flags, and the checksum, uses
// the byte order selected by the endianness flag.
package section
