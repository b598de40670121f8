package domain

import (
	"time"
	"unicode/utf8"
)

// ClientType registered type of a client
type ClientType string

const (
	ClientIndividual ClientType = "individual" // "casa"
	ClientBusiness   ClientType = "business"   // "empresa"
)

// IsValid returns true for a known client type
func (t ClientType) IsValid() bool {
	return t == ClientIndividual || t == ClientBusiness
}

// Client represents a registered client. Registration itself lives outside this service.
type Client struct {
	ID         int64
	Name       string
	Country    string
	Region     *string // state/province, optional
	ClientType ClientType
	CreatedAt  time.Time
}

// HasRegion returns true when the region is set. Values of one rune or less are
// placeholders left by registration forms and mean "no region constraint".
func (c *Client) HasRegion() bool {
	return c.Region != nil && utf8.RuneCountInString(*c.Region) > MaxPlaceholderRegionLength
}

// IsBusiness returns true for business clients
func (c *Client) IsBusiness() bool {
	return c.ClientType == ClientBusiness
}
