// Package testutils holds helpers shared by package tests.
package testutils
