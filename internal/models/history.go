package models

import "github.com/julianstephens/aura/internal/datekey"

// HistoryEntry is the final value of a daily counter on a past day
type HistoryEntry struct {
	Day   datekey.Key `json:"day"`
	Value int         `json:"value"`
}
