package model

// PriceUpdate is the JSON breakdown of a single EMA price update.
// Big values are encoded as decimal strings.
type PriceUpdate struct {
	LastPrice    string `json:"last_price"`
	NowSqrtPrice string `json:"now_sqrt_price"`
	TimeDiff     int64  `json:"time_diff"`
	Alpha        string `json:"alpha"`
	NowPrice     string `json:"now_price"`
	ClampedPrice string `json:"clamped_price"`
	Clamp        string `json:"clamp"`
	NewPrice     string `json:"new_price"`
	Result       string `json:"result"`
}
