// Package domain holds the prediction types shared by transport, service and journal
package domain

import (
	"encoding/json"
	"time"
)

// Request lists the fields the scorer reads. The gateway forwards the raw body untouched;
// this type only backs the optional presence check
type Request struct {
	FundingRounds json.RawMessage `json:"funding_rounds" validate:"present"`
	FundingAmount json.RawMessage `json:"funding_amount" validate:"present"`
	Valuation     json.RawMessage `json:"valuation" validate:"present"`
	Revenue       json.RawMessage `json:"revenue" validate:"present"`
	Employees     json.RawMessage `json:"employees" validate:"present"`
	MarketShare   json.RawMessage `json:"market_share" validate:"present"`
	Profitable    json.RawMessage `json:"profitable" validate:"present"`
	YearFounded   json.RawMessage `json:"year_founded" validate:"present"`
	Industry      json.RawMessage `json:"industry" validate:"present"`
	Region        json.RawMessage `json:"region" validate:"present"`
}

// Record is one journaled outcome
type Record struct {
	InvocationID string
	RequestID    string
	Kind         string
	HTTPStatus   int
	// ExitCode is nil when the scorer never exited normally
	ExitCode   *int
	DurationMs int64
	Detail     string
	CreatedAt  time.Time
}

// KindStat aggregates journaled outcomes of one kind
type KindStat struct {
	Kind  string `json:"kind"   example:"success"`
	Count int64  `json:"count"  example:"42"`
	AvgMs int64  `json:"avg_ms" example:"812"`
	MaxMs int64  `json:"max_ms" example:"2210"`
}

// Summary is the outcome breakdown over a trailing window
type Summary struct {
	Since time.Time  `json:"since"`
	Until time.Time  `json:"until"`
	Total int64      `json:"total"`
	Kinds []KindStat `json:"kinds"`
}

// Info describes how the scorer is launched and admitted
type Info struct {
	Command        string   `json:"command"          example:"python3"`
	Args           []string `json:"args"`
	TimeoutMs      int64    `json:"timeout_ms"       example:"30000"`
	MaxOutputBytes int64    `json:"max_output_bytes" example:"4194304"`
	MaxConcurrent  int64    `json:"max_concurrent"   example:"4"`
	QueueWaitMs    int64    `json:"queue_wait_ms"    example:"5000"`
	DetailBytes    int      `json:"detail_bytes"     example:"8192"`
	Strict         bool     `json:"strict"`
	Journal        bool     `json:"journal"`
}
