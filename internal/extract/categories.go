package extract

// Constant categories
const (
	CatBlockLimits       = "Block Limits"
	CatTransactionLimits = "Transaction Limits"
	CatScriptLimits      = "Script Limits"
	CatMonetaryPolicy    = "Monetary Policy"
	CatDifficulty        = "Difficulty Adjustment"
	CatUnits             = "Units"
)

// Configuration-default categories
const (
	CatStorage       = "Storage"
	CatNetwork       = "Network"
	CatRPC           = "RPC"
	CatModules       = "Modules"
	CatDoSProtection = "DoS Protection"
)

// RPC method categories
const (
	CatBlockchain = "Blockchain"
	CatMempool    = "Mempool & Transactions"
	CatMining     = "Mining"
	CatIndexing   = "Indexing"
	CatControl    = "Control"
)

// ConstantClassifier groups protocol constants. "block" is checked before
// "tx", so max_tx_block_weight is a block limit.
func ConstantClassifier() *Classifier {
	return NewClassifier([]Rule{
		{CatBlockLimits, Contains("block", "weight", "size")},
		{CatTransactionLimits, Contains("tx", "transaction")},
		{CatScriptLimits, Contains("script", "stack", "ops")},
		{CatMonetaryPolicy, Contains("subsidy", "halving", "money")},
		{CatDifficulty, Contains("difficulty", "target", "time")},
		{CatUnits, Contains("satoshis", "btc")},
	}, nil)
}

// DefaultsClassifier groups configuration settings
func DefaultsClassifier() *Classifier {
	return NewClassifier([]Rule{
		{CatStorage, Contains("cache", "pruning", "storage")},
		{CatNetwork, Contains("peer", "network", "connection", "timeout", "addr")},
		{CatRPC, Contains("rate", "rpc", "auth")},
		{CatModules, Contains("module")},
		{CatDoSProtection, Contains("dos", "ban", "protection")},
	}, nil)
}

// RPCMethodClassifier groups RPC method names. Mempool & Transactions has two
// rules; Control is checked before Indexing but rendered after it.
func RPCMethodClassifier() *Classifier {
	return NewClassifier([]Rule{
		{CatBlockchain, Or(
			HasPrefix("getblock", "gettx"),
			OneOf("getblockchaininfo", "getblockcount", "getblockhash", "getdifficulty",
				"gettxoutsetinfo", "verifychain", "gettxoutproof", "verifytxoutproof"),
		)},
		{CatMempool, And(HasPrefix("get"), Contains("mempool", "raw", "tx"))},
		{CatMempool, HasPrefix("send", "test", "decoderaw")},
		{CatNetwork, Or(
			HasPrefix("getnetwork", "getpeer", "getconnection"),
			OneOf("ping", "addnode", "disconnectnode", "getnettotals", "clearbanned",
				"setban", "listbanned", "getaddednodeinfo", "getnodeaddresses", "setnetworkactive"),
		)},
		{CatMining, HasPrefix("getmining", "getblocktemplate", "submitblock", "estimate", "prioritise")},
		{CatControl, OneOf("stop", "uptime", "getmemoryinfo", "getrpcinfo", "help", "logging", "gethealth", "getmetrics")},
		{CatIndexing, HasPrefix("getblockfilter", "getindexinfo")},
	}, []string{CatBlockchain, CatMempool, CatNetwork, CatMining, CatIndexing, CatControl, Other})
}
