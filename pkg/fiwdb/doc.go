// Package fiwdb reads the on-disk FIW database: the lookup tables (PIDs,
// RIDs, FIDs), the F???? family directories and their member and
// relationship files, and runs the pair pipeline across every family.
package fiwdb
