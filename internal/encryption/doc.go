// Package encryption implements the symmetric key lifecycle: generation of
// key material, streaming AES-256-CBC encryption and decryption, and
// password-based derivation of wrapping keys.
// Features concurrent file processing and atomic output writes.
package encryption
