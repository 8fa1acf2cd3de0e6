package esplora

// Wire types mirror the Esplora REST schema. Values arrive as signed JSON
// numbers and are narrowed during conversion.
type (
	txJSON struct {
		TxID   string     `json:"txid"`
		Vin    []vinJSON  `json:"vin"`
		Vout   []voutJSON `json:"vout"`
		Status statusJSON `json:"status"`
	}

	vinJSON struct {
		TxID       string    `json:"txid"`
		Vout       int64     `json:"vout"`
		Prevout    *voutJSON `json:"prevout"`
		IsCoinbase bool      `json:"is_coinbase"`
	}

	voutJSON struct {
		ScriptPubKey        string `json:"scriptpubkey"`
		ScriptPubKeyType    string `json:"scriptpubkey_type"`
		ScriptPubKeyAddress string `json:"scriptpubkey_address"`
		Value               int64  `json:"value"`
	}

	statusJSON struct {
		Confirmed   bool  `json:"confirmed"`
		BlockHeight int64 `json:"block_height"`
	}

	// outspendJSON is /tx/:txid/outspend/:vout. Stock Esplora omits value;
	// the field is kept for instances that report it.
	outspendJSON struct {
		Spent bool   `json:"spent"`
		TxID  string `json:"txid"`
		Vin   int64  `json:"vin"`
		Value int64  `json:"value"`
	}
)
