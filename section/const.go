package section

const (
	// MagicUMSV1 identifies version 1 of the UMS envelope.
	MagicUMSV1 = 0xC5A1

	// Flag bits
	EndiannessMask    = 0x0001 // 0 = little-endian, 1 = big-endian
	ReservedFlagsMask = 0xFFFE // must be zero

	HeaderSize   = 16 // fixed header size in bytes
	ChecksumSize = 8  // trailing xxHash64 size in bytes

	// Overhead is the envelope size excluding the payload.
	Overhead = HeaderSize + ChecksumSize
)
