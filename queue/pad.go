package queue

// pad is cache line padding to prevent false sharing between hot atomic
// fields, matching the padding discipline code.hybscloud.com/lfq uses
// throughout its own ring slots.
type pad [64]byte

// padShort pads out the remainder of a cache line after an 8-byte field.
type padShort [64 - 8]byte
