package razorpay

// MethodLabel describes how a payment was made, e.g. "credit card" or "upi".
func MethodLabel(p *Payment) string {
	if p.Method != "card" {
		return p.Method
	}
	cardType := "unknown"
	if p.Card != nil && p.Card.Type != "" {
		cardType = p.Card.Type
	}
	return cardType + " card"
}

// Via names the instrument behind the method: bank, wallet, VPA or
// "last4,network" for cards. It is nil for other methods.
func Via(p *Payment) *string {
	var via string
	switch p.Method {
	case "netbanking":
		via = p.Bank
	case "wallet":
		via = p.Wallet
	case "upi":
		via = p.VPA
	case "card":
		if p.Card == nil {
			return nil
		}
		via = p.Card.Last4 + "," + p.Card.Network
	default:
		return nil
	}
	return &via
}
