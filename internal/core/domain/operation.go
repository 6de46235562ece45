package domain

// OperationKind names one kind of store operation.
type OperationKind string

const (
	// OpCopyID copies the entry identifier to the clipboard.
	OpCopyID OperationKind = "copy_id"
	// OpCopyPassword copies the decrypted password to the clipboard.
	OpCopyPassword OperationKind = "copy_password"
	// OpCopyLogin copies the login line to the clipboard.
	OpCopyLogin OperationKind = "copy_login"
	// OpCopyOTP copies a freshly derived one-time code to the clipboard.
	OpCopyOTP OperationKind = "copy_otp"
	// OpFetchOTP derives a one-time code for display.
	OpFetchOTP OperationKind = "fetch_otp"
	// OpFetchEntry decrypts the whole entry for display.
	OpFetchEntry OperationKind = "fetch_entry"
)

// OperationKinds lists every kind in a stable order.
var OperationKinds = []OperationKind{
	OpCopyID,
	OpCopyPassword,
	OpCopyLogin,
	OpCopyOTP,
	OpFetchOTP,
	OpFetchEntry,
}

// String implements fmt.Stringer.
func (k OperationKind) String() string {
	return string(k)
}

// OperationID identifies an operation against one entry.
// At most one operation per OperationID runs at any time.
type OperationID struct {
	Kind    OperationKind
	EntryID string
}

// NewOperationID creates an OperationID.
func NewOperationID(kind OperationKind, entryID string) OperationID {
	return OperationID{Kind: kind, EntryID: entryID}
}

// String implements fmt.Stringer.
func (id OperationID) String() string {
	return string(id.Kind) + ":" + id.EntryID
}
