package ports

import "context"

// Decrypter turns an encrypted entry file into its plaintext.
//
//go:generate go run go.uber.org/mock/mockgen -source=decrypter.go -destination=mocks/mock_decrypter.go -package=mocks
type Decrypter interface {
	// Decrypt returns the decrypted text of the file at path.
	Decrypt(ctx context.Context, path string) (string, error)
}
