package ports

// CodeGenerator derives one-time passwords.
//
//go:generate mockgen -source=otp.go -destination=mocks/mock_otp.go -package=mocks
type CodeGenerator interface {
	// Generate returns the current code for an otpauth:// URI.
	Generate(uri string) (string, error)
}
