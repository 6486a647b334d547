package entities

// AuthChallenge is the sign-in message issued for a wallet address. The
// client signs Message with personal_sign and sends the signature back to
// prove control of the address.
type AuthChallenge struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}
