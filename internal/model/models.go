// internal/model/models.go
package model

import (
	"time"
)

// RepositoryIdentity is the owner/name pair addressing a hosted repository.
// It is produced by the URL parser and consumed immediately by the fetcher;
// it is never persisted on its own.
type RepositoryIdentity struct {
	Owner    string
	Name     string
	FullName string // "owner/name"
}

// RawMetricsSnapshot holds the provider response fields the pipeline needs.
// Language is already normalized: a repository without a primary language
// carries the literal "Unknown". PushedAt is nil when the provider reports
// no push timestamp; it is never defaulted to the current time.
type RawMetricsSnapshot struct {
	Name     string
	Owner    string
	FullName string
	Stars    int
	Forks    int
	Issues   int
	Language string
	PushedAt *time.Time
}

// DerivedMetrics are the composite indicators computed from a snapshot.
// Only the outputs are stored; the snapshot fields that produced them are
// persisted alongside as provider truth.
type DerivedMetrics struct {
	HealthScore    int
	ActivityLevel  string
	TrendingFactor int
}

// RepositoryRecord is the persisted entity: one row per successful
// ingestion. The JSON names mirror the stored column names. Records are
// created once and never updated in place.
type RepositoryRecord struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Owner          string    `json:"owner"`
	FullName       string    `json:"fullname"`
	Stars          int       `json:"stars"`
	Forks          int       `json:"forks"`
	Issues         int       `json:"issues"`
	MainLanguage   string    `json:"mainlanguage"`
	HealthScore    int       `json:"healthscore"`
	ActivityLevel  string    `json:"activitylevel"`
	TrendingFactor int       `json:"trendingfactor"`
	CreatedAt      time.Time `json:"createdat"`
}
