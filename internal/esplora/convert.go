package esplora

import (
	"fmt"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
	"github.com/goodnatureofminers/chaintrace7000-backend/pkg/safe"
)

// buildTransaction maps an Esplora tx into the model. Inputs without a
// prevout (coinbase, pruned data) stay unresolved with an empty address and
// zero value.
func buildTransaction(src txJSON, decoder *scriptDecoder) (*model.Transaction, error) {
	height, err := safe.Uint32(src.Status.BlockHeight)
	if err != nil {
		return nil, fmt.Errorf("tx %s block height overflow: %w", src.TxID, err)
	}

	tx := &model.Transaction{
		TxID:        src.TxID,
		Confirmed:   src.Status.Confirmed,
		BlockHeight: height,
	}

	for i, vin := range src.Vin {
		prevVout, err := safe.Uint32(vin.Vout)
		if err != nil {
			return nil, fmt.Errorf("tx %s input %d prev vout overflow: %w", src.TxID, i, err)
		}
		in := model.Input{PrevTxID: vin.TxID, PrevVout: prevVout}
		if vin.Prevout != nil {
			value, err := safe.Uint64(vin.Prevout.Value)
			if err != nil {
				return nil, fmt.Errorf("tx %s input %d value overflow: %w", src.TxID, i, err)
			}
			in.Value = value
			in.ScriptType = vin.Prevout.ScriptPubKeyType
			in.Address = decoder.address(vin.Prevout.ScriptPubKeyAddress, vin.Prevout.ScriptPubKey)
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	for i, vout := range src.Vout {
		index, err := safe.Uint32(i)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", src.TxID, err)
		}
		value, err := safe.Uint64(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d value overflow: %w", src.TxID, i, err)
		}
		tx.Outputs = append(tx.Outputs, model.Output{
			Vout:       index,
			Value:      value,
			ScriptType: vout.ScriptPubKeyType,
			Address:    decoder.address(vout.ScriptPubKeyAddress, vout.ScriptPubKey),
		})
	}

	return tx, nil
}

func buildSpendInfo(src outspendJSON) (model.SpendInfo, error) {
	info := model.SpendInfo{Spent: src.Spent}
	if !src.Spent {
		return info, nil
	}

	vin, err := safe.Uint32(src.Vin)
	if err != nil {
		return model.SpendInfo{}, fmt.Errorf("spending vin overflow: %w", err)
	}
	value, err := safe.Uint64(src.Value)
	if err != nil {
		return model.SpendInfo{}, fmt.Errorf("spend value overflow: %w", err)
	}

	info.SpendingTxID = src.TxID
	info.SpendingVin = vin
	info.Value = value
	return info, nil
}
