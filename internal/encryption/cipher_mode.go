package encryption

// CipherMode selects how the IV for an encrypted file is sourced.
type CipherMode byte

const (
	// ModeFileIV generates a fresh random IV per file and prepends it
	// unencrypted to that file's ciphertext.
	ModeFileIV CipherMode = iota
	// ModeSharedIV uses the session IV from the key material and writes no
	// header, producing raw CBC ciphertext for fixed-IV consumers.
	// Reusing one IV across files weakens CBC; prefer ModeFileIV.
	ModeSharedIV
)
