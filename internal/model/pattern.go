package model

// GapType is the direction of a gap.
type GapType string

const (
	GapUp   GapType = "up"
	GapDown GapType = "down"
)

// Gap is a price discontinuity between bar Index-1 and bar Index.
// For an up gap From is the previous high and To the current low;
// for a down gap From is the previous low and To the current high.
type Gap struct {
	Index      int     `json:"index" parquet:"index"`
	Type       GapType `json:"gap_type" parquet:"gap_type"`
	From       float64 `json:"gap_from" parquet:"gap_from"`
	To         float64 `json:"gap_to" parquet:"gap_to"`
	PriceLevel float64 `json:"price_level" parquet:"price_level"`
	RefPrice   float64 `json:"ref_price" parquet:"ref_price"`
	Volume     float64 `json:"volume" parquet:"volume"`
	Filled     bool    `json:"filled" parquet:"filled"`
}

// KeyLevel is a price where at least two gaps clustered.
type KeyLevel struct {
	Price      float64 `json:"price" parquet:"price"`
	StartIndex int     `json:"start_index" parquet:"start_index"`
	GapCount   int     `json:"gap_count" parquet:"gap_count"`
}

// Island is the bar range bounded by two opposite gaps.
type Island struct {
	High       float64 `json:"high" parquet:"high"`
	Low        float64 `json:"low" parquet:"low"`
	StartIndex int     `json:"start_index" parquet:"start_index"`
	EndIndex   int     `json:"end_index" parquet:"end_index"`
}
