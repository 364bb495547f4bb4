package models

import "time"

// CredentialFields the user editable fields of a credential
//
// Every field is required; the canonical schema is {name, url, username, password}.
type CredentialFields struct {
	// Name display label
	Name string `json:"name" gorm:"column:name;not null" validate:"required"`
	// URL site the credential belongs to
	URL string `json:"url" gorm:"column:url;not null" validate:"required"`
	// Username login name
	Username string `json:"username" gorm:"column:username;not null" validate:"required"`
	// Password login password, stored as given
	Password string `json:"password" gorm:"column:password;not null" validate:"required"`
}

// Credential one stored secret entry
type Credential struct {
	// ID credential ID, assigned by the store on insert
	ID uint `json:"id" gorm:"column:id;primaryKey;autoIncrement"`

	CredentialFields

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}
