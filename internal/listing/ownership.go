package listing

// Parties are the two sides of a transaction, resolved once per operation.
type Parties struct {
	BuyerID  uint
	SellerID uint
}

// ResolveParties maps a target's owner and the offerer onto buyer/seller.
// For an item the owner sells and the offerer buys; for a demand the owner
// is the one buying and the offerer sells. Every role check downstream
// must go through this function, never re-derive the mapping.
func ResolveParties(targetType TargetType, ownerID, offererID uint) Parties {
	if targetType == TargetDemand {
		return Parties{BuyerID: ownerID, SellerID: offererID}
	}
	return Parties{BuyerID: offererID, SellerID: ownerID}
}

// Counterparty returns the other side of the transaction for a participant.
func (p Parties) Counterparty(userID uint) uint {
	if userID == p.BuyerID {
		return p.SellerID
	}
	return p.BuyerID
}

// Includes reports whether userID is one of the two parties.
func (p Parties) Includes(userID uint) bool {
	return userID == p.BuyerID || userID == p.SellerID
}
