package domain

// Capability is a permission granted by the identity collaborator.
type Capability string

const (
	CapabilityAccountOwner  Capability = "is-account-owner"
	CapabilityAdministrator Capability = "is-administrator"
)

// Caller is the authenticated principal behind a request. AccountID is set
// for sellers and names the account they own.
type Caller struct {
	UserID       string
	AccountID    string
	Capabilities []Capability
}

// Has reports whether the caller holds capability c.
func (c Caller) Has(capability Capability) bool {
	for _, have := range c.Capabilities {
		if have == capability {
			return true
		}
	}
	return false
}

// IsAdministrator reports whether the caller may act on any account.
func (c Caller) IsAdministrator() bool {
	return c.Has(CapabilityAdministrator)
}

// Owns reports whether the caller is the owner of accountID.
func (c Caller) Owns(accountID string) bool {
	return accountID != "" && c.AccountID == accountID && c.Has(CapabilityAccountOwner)
}

// CanRead reports whether the caller may read data of accountID.
func (c Caller) CanRead(accountID string) bool {
	return c.IsAdministrator() || c.Owns(accountID)
}

// SystemCaller is used by provisioning code running at initialization.
func SystemCaller() Caller {
	return Caller{UserID: "system", Capabilities: []Capability{CapabilityAdministrator}}
}
