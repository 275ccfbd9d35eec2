package domain

import "time"

// Confidentiality classifies who may see a case at all.
type Confidentiality string

const (
	ConfidentialityPublic     Confidentiality = "PUBLIC"
	ConfidentialityInternal   Confidentiality = "INTERNAL"
	ConfidentialityRestricted Confidentiality = "RESTRICTED"
)

// PartyRole tags a party's position relative to the firm's client.
type PartyRole string

const (
	PartySelf         PartyRole = "SELF"
	PartyCounterparty PartyRole = "COUNTERPARTY"
	PartyThirdParty   PartyRole = "THIRD_PARTY"
)

// Party is attached to a case at provisioning time and immutable afterwards.
type Party struct {
	Role  PartyRole `json:"role"`
	Label string    `json:"label"`
	Notes string    `json:"notes,omitempty"`
}

// ObjectRef addresses one object in the record store by type and identity.
type ObjectRef struct {
	Type string `json:"object_type"`
	ID   string `json:"object_id"`
}

// Link is a justified relation between two addressable objects. Links are
// created only through the gate's validator chain; cross-case links are
// forbidden. Endpoints are allowed to reference objects outside the store
// (not yet ingested, or external).
type Link struct {
	ID            string    `json:"id"`
	From          ObjectRef `json:"from"`
	To            ObjectRef `json:"to"`
	Justification string    `json:"justification"`
	CreatedAt     time.Time `json:"created_at"`
}

// Case is the top-level record. Branches are created with the case and are
// read-mostly afterwards; documents live in the flat index keyed by
// (case id, branch code), never on the case itself.
type Case struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Jurisdiction    string          `json:"jurisdiction"`
	Confidentiality Confidentiality `json:"confidentiality"`
	CreatedAt       time.Time       `json:"created_at"`
	Branches        []Branch        `json:"branches"`
	Parties         []Party         `json:"parties"`
	Links           []Link          `json:"links"`
}

// Clone returns a deep copy. Stores hand out clones so readers can never
// observe concurrent structural changes.
func (c Case) Clone() Case {
	out := c
	out.Branches = make([]Branch, len(c.Branches))
	for i, b := range c.Branches {
		bc := b
		bc.Documents = make([]Document, len(b.Documents))
		for j, d := range b.Documents {
			bc.Documents[j] = d.Clone()
		}
		out.Branches[i] = bc
	}
	out.Parties = append([]Party(nil), c.Parties...)
	out.Links = append([]Link(nil), c.Links...)
	return out
}
