package types

const (
	walletAddressPattern   = `^0x[0-9a-fA-F]{40}$`
	transactionHashPattern = `^0x[0-9a-fA-F]{64}$`
)
