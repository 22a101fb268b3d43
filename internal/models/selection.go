package models

// Selection is the externally chosen set of blockable targets. The engine
// never interprets the entries, it only ever checks whether any exist:
// blocking an empty set is meaningless.
type Selection struct {
	Items []string `json:"items"`
}

func (s *Selection) Empty() bool {
	return s == nil || len(s.Items) == 0
}

// Pairing carries the two opaque identity fields owned by the external
// relationship service. The engine reads them through the store and passes
// them through unchanged.
type Pairing struct {
	LocalUserID string `json:"local_user_id"`
	PartnerID   string `json:"partner_id"`
}
