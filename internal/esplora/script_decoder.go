package esplora

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// scriptDecoder recovers addresses from raw output scripts when the API
// response carries none.
type scriptDecoder struct {
	params *chaincfg.Params
}

func newScriptDecoder(network string) (*scriptDecoder, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &scriptDecoder{params: params}, nil
}

// address prefers the reported address and falls back to decoding the
// scriptpubkey hex. Undecodable scripts yield an empty address, never an
// error.
func (d *scriptDecoder) address(reported, scriptHex string) string {
	if reported != "" {
		return reported
	}
	if scriptHex == "" {
		return ""
	}

	scriptBytes, err := hex.DecodeString(scriptHex)
	if err != nil {
		return ""
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(scriptBytes, d.params)
	if err != nil || len(addrs) == 0 {
		return ""
	}
	return addrs[0].EncodeAddress()
}

func chainParamsForNetwork(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "", "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
