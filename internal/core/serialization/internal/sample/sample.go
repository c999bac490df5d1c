// Package sample holds types that share names with types of the
// serialization tests, so layout caching can be checked across packages.
package sample

type Settings struct {
	Muted bool
	Ratio float64
	Tags  []string
}
