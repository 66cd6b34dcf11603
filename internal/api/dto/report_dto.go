package dto

// StatsResponse holds scoped ticket counts.
type StatsResponse struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Pending    int64 `json:"pending"`
	Resolved   int64 `json:"resolved"`
	Consistent bool  `json:"consistent"`
}

// KPIResponse holds the four dashboard buckets.
type KPIResponse struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Pending    int64 `json:"pending"`
	Resolved   int64 `json:"resolved"`
}

// DailyPoint is one non-empty day of the series.
type DailyPoint struct {
	Date  Date  `json:"date"`
	Count int64 `json:"count"`
}

// DailySeriesResponse is a sparse, ascending per-day series.
type DailySeriesResponse struct {
	StartDate Date         `json:"start_date"`
	EndDate   Date         `json:"end_date"`
	Series    []DailyPoint `json:"series"`
}
