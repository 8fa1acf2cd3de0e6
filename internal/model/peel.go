package model

// ValueSource labels how a peel step's value was resolved. Steps resolved at
// the tx_vout or proxy levels deserve less confidence downstream.
type ValueSource string

const (
	ValueSourceSpend        ValueSource = "spend"
	ValueSourceTxVout       ValueSource = "tx_vout"
	ValueSourceProxyLargest ValueSource = "proxy_spent_largest"
	ValueSourceUnknown      ValueSource = "unknown"
)

// PeelEnd states why traversal stopped at a given step.
type PeelEnd string

const (
	PeelEndUnspent        PeelEnd = "unspent"
	PeelEndMaxHops        PeelEnd = "max_hops"
	PeelEndAmbiguousSplit PeelEnd = "ambiguous_split"
	PeelEndUnavailable    PeelEnd = "unavailable"
)

// SmallOutput is a suspected peeled-off payment within one hop.
type SmallOutput struct {
	Vout    uint32 `json:"vout"`
	Address string `json:"address,omitempty"`
	Value   uint64 `json:"value"`
}

// PeelStep records one hop of a peel-chain traversal.
type PeelStep struct {
	Hop              int           `json:"hop"`
	TxID             string        `json:"txid"`
	Vout             uint32        `json:"vout"`
	Value            uint64        `json:"value"`
	ValueSource      ValueSource   `json:"value_source"`
	SpendingTxID     string        `json:"spending_txid,omitempty"`
	SpendingVin      uint32        `json:"spending_vin,omitempty"`
	RemainderVout    uint32        `json:"remainder_vout,omitempty"`
	RemainderAddress string        `json:"remainder_address,omitempty"`
	RemainderValue   uint64        `json:"remainder_value,omitempty"`
	SmallOutputs     []SmallOutput `json:"small_outputs,omitempty"`
	End              PeelEnd       `json:"end,omitempty"`
}

// PeelDetails exposes the sub-scores behind a blended peel score.
type PeelDetails struct {
	Monotonicity      float64       `json:"monotonicity"`
	RatioStability    float64       `json:"ratio_stability"`
	SmallPeelPresence float64       `json:"small_peel_presence"`
	HopFactor         float64       `json:"hop_factor"`
	RawRatios         []float64     `json:"raw_ratios,omitempty"`
	NumericHops       int           `json:"numeric_hops"`
	ValueSources      []ValueSource `json:"value_sources,omitempty"`
	Reason            string        `json:"reason,omitempty"`
}

// PeelResult is the full traversal outcome with its blended [0, 1] score.
type PeelResult struct {
	Steps          []PeelStep  `json:"steps"`
	Score          float64     `json:"score"`
	Details        PeelDetails `json:"details"`
	Interpretation string      `json:"interpretation"`
}

// Interpretation bands for a blended peel score.
const (
	likelyPeelThreshold   = 0.75
	possiblePeelThreshold = 0.45
)

// InterpretPeelScore maps a blended score to its reviewer-facing band.
func InterpretPeelScore(score float64) string {
	switch {
	case score >= likelyPeelThreshold:
		return "Likely peel chain"
	case score >= possiblePeelThreshold:
		return "Possible peel chain"
	default:
		return "No clear peel chain"
	}
}
