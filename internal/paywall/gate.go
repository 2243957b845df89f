package paywall

import "codeberg.org/atlasagency/server/internal/license"

// unlock state of one session
type Gate string

const (
	Locked   Gate = "locked"
	Unlocked Gate = "unlocked"
)

// returns the gate after a verification result. only a valid result
// opens it and nothing closes it again.
func (g Gate) Apply(result license.Result) Gate {
	if g.Unlocked() || result.Valid() {
		return Unlocked
	}
	return Locked
}

// the zero value is locked
func (g Gate) Unlocked() bool {
	return g == Unlocked
}

func (g Gate) String() string {
	if g.Unlocked() {
		return string(Unlocked)
	}
	return string(Locked)
}
