package extract

import (
	"reflect"
	"testing"
)

func TestConstantClassifier_PriorityOrder(t *testing.T) {
	c := ConstantClassifier()
	tests := map[string]string{
		"MAX_TX_BLOCK_WEIGHT":    CatBlockLimits, // block wins over tx
		"MAX_BLOCK_SIZE":         CatBlockLimits,
		"MAX_TX_SIGOPS":          CatTransactionLimits,
		"MAX_SCRIPT_ELEMENT":     CatScriptLimits,
		"MAX_OPS_PER_SCRIPT":     CatScriptLimits,
		"HALVING_INTERVAL":       CatMonetaryPolicy,
		"MAX_MONEY":              CatMonetaryPolicy,
		"DIFFICULTY_ADJUSTMENT":  CatDifficulty,
		"TARGET_SPACING":         CatDifficulty,
		"SATOSHIS_PER_BITCOIN":   CatUnits,
		"COINBASE_MATURITY":      Other,
		"LOCKTIME_THRESHOLD":     CatDifficulty, // "time" matches
		"MAX_BLOCK_SIGOPS_COST":  CatBlockLimits,
		"WITNESS_SCALE_FACTOR":   Other,
		"SEQUENCE_LOCKTIME_MASK": CatDifficulty,
	}
	for name, want := range tests {
		if got := c.Classify(name); got != want {
			t.Errorf("Classify(%q) = %q, want %q", name, got, want)
		}
	}

	wantOrder := []string{CatBlockLimits, CatTransactionLimits, CatScriptLimits, CatMonetaryPolicy, CatDifficulty, CatUnits, Other}
	if !reflect.DeepEqual(c.Order(), wantOrder) {
		t.Errorf("Order() = %v, want %v", c.Order(), wantOrder)
	}
}

func TestDefaultsClassifier(t *testing.T) {
	c := DefaultsClassifier()
	tests := map[string]string{
		"storage.cache.size":   CatStorage,
		"pruning.keep.blocks":  CatStorage,
		"max.peers":            CatNetwork,
		"connection.timeout":   CatNetwork,
		"rpc.port":             CatRPC,
		"rate.limit":           CatRPC,
		"module.dir":           CatModules,
		"dos.ban.threshold":    CatDoSProtection,
		"network.ban.duration": CatNetwork, // network before ban
		"log.level":            Other,
	}
	for name, want := range tests {
		if got := c.Classify(name); got != want {
			t.Errorf("Classify(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestRPCMethodClassifier(t *testing.T) {
	c := RPCMethodClassifier()
	tests := map[string]string{
		"getblockcount":         CatBlockchain,
		"getblockchaininfo":     CatBlockchain,
		"getdifficulty":         CatBlockchain,
		"verifychain":           CatBlockchain,
		"gettxout":              CatBlockchain,
		"getblockfilter":        CatBlockchain, // getblock prefix wins over indexing
		"sendrawtransaction":    CatMempool,
		"getrawmempool":         CatMempool,
		"getmempoolinfo":        CatMempool,
		"testmempoolaccept":     CatMempool,
		"decoderawtransaction":  CatMempool,
		"getnetworkinfo":        CatNetwork,
		"getpeerinfo":           CatNetwork,
		"ping":                  CatNetwork,
		"setban":                CatNetwork,
		"getmininginfo":         CatMining,
		"submitblock":           CatMining,
		"estimatesmartfee":      CatMining,
		"prioritisetransaction": CatMining,
		"stop":                  CatControl,
		"uptime":                CatControl,
		"help":                  CatControl,
		"getindexinfo":          CatIndexing,
		"frobnicate":            Other,
	}
	for name, want := range tests {
		if got := c.Classify(name); got != want {
			t.Errorf("Classify(%q) = %q, want %q", name, got, want)
		}
	}

	wantOrder := []string{CatBlockchain, CatMempool, CatNetwork, CatMining, CatIndexing, CatControl, Other}
	if !reflect.DeepEqual(c.Order(), wantOrder) {
		t.Errorf("Order() = %v, want %v", c.Order(), wantOrder)
	}
}

func TestClassifier_FirstMatchWins(t *testing.T) {
	c := NewClassifier([]Rule{
		{"first", Contains("a")},
		{"second", Contains("ab")},
	}, nil)
	if got := c.Classify("AB"); got != "first" {
		t.Errorf("Classify(AB) = %q, want first", got)
	}
	if got := c.Classify("zz"); got != Other {
		t.Errorf("Classify(zz) = %q, want %q", got, Other)
	}
	if want := []string{"first", "second", Other}; !reflect.DeepEqual(c.Order(), want) {
		t.Errorf("Order() = %v, want %v", c.Order(), want)
	}
}
