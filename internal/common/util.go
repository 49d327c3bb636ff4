package common

// WipeByteArray overwrites b with zeros. Used for secrets read from the
// terminal (access tokens) once they have been copied into a session.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
