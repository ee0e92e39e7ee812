package domain

type Department struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Deleted   bool   `json:"deleted,omitempty"`
	CreatedOn string `json:"created_on"`
}

type Credential struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	// DepartmentID names the department that owns and issues the credential.
	DepartmentID int32  `json:"department_id"`
	PriceCents   int32  `json:"price_cents"`
	Deleted      bool   `json:"deleted,omitempty"`
	CreatedOn    string `json:"created_on"`
}

// Package bundles credentials under a single price.
type Package struct {
	ID         int32         `json:"id"`
	Name       string        `json:"name"`
	PriceCents int32         `json:"price_cents"`
	Deleted    bool          `json:"deleted,omitempty"`
	Items      []PackageItem `json:"items,omitempty"`
	CreatedOn  string        `json:"created_on"`
}

type PackageItem struct {
	PackageID    int32 `json:"package_id"`
	CredentialID int32 `json:"credential_id"`
	Quantity     int32 `json:"quantity"`
}
