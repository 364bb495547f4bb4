package view

import (
	"strings"

	"github.com/alwitt/credvault/models"
)

const (
	// passwordMask shown in place of any password, independent of its length
	passwordMask = "*******"
	// emailLocalPartMask shown in place of the part of an email before the '@'
	emailLocalPartMask = "*****"
)

// MaskPassword the on-screen form of a password
func MaskPassword(_ string) string {
	return passwordMask
}

// MaskEmail hide the local part of an email, keeping the domain. The domain ends at the
// next '@', if any. A value without '@' is returned as is.
func MaskEmail(value string) string {
	parts := strings.Split(value, "@")
	if len(parts) < 2 {
		return value
	}
	return emailLocalPartMask + "@" + parts[1]
}

// DisplayRow masked form of a credential for on-screen display
type DisplayRow struct {
	ID       uint
	Name     string
	URL      string
	Username string
	Password string
}

// Display build the masked display row of a credential. The credential is not modified.
func Display(entry models.Credential) DisplayRow {
	return DisplayRow{
		ID:       entry.ID,
		Name:     entry.Name,
		URL:      entry.URL,
		Username: MaskEmail(entry.Username),
		Password: MaskPassword(entry.Password),
	}
}
