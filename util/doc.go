// Package util provides generic utility functions for streamkit.
//
// It includes eager slice operations, pointer helpers for nullable
// sequences, map utilities and text predicates.
package util
