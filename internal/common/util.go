package common

// WipeByteArray overwrites b in place so sensitive material (passwords)
// does not linger in memory after use.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
