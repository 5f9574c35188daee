package client

// Wallet resolves the account the client acts for.
type Wallet interface {
	CurrentAddress() (string, error)
}

// StaticWallet is always connected as one address; the empty address means disconnected.
type StaticWallet string

func (w StaticWallet) CurrentAddress() (string, error) {
	if w == "" {
		return "", ErrWalletNotConnected
	}
	return string(w), nil
}
