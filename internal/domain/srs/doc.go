// Package srs implements the fixed-interval review scheduler used for word
// records. Each record sits on an SRS level from 1 to 8; every level maps to a
// review interval, and an "easy" verdict promotes the record one level.
//
// All calculations are pure: functions take the current time explicitly and
// return new records rather than mutating their inputs.
package srs
