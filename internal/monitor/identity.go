package monitor

// Identity derives the stable 32-bit monitor id from raw EDID bytes.
//
// The mixing function is a simple wrapping accumulator,
// acc' = ((acc<<6) + (acc<<16) + byte) - acc, applied per byte. It is not
// cryptographic; two distinct monitors could in principle collide and no
// disambiguation exists. 0 is reserved as "unresolved" and is rejected
// downstream.
func Identity(edid []byte) uint32 {
	var digest uint32
	for _, b := range edid {
		digest = digest<<6 + digest<<16 + uint32(b) - digest
	}
	return digest
}
