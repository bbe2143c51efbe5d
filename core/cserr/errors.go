// Package cserr holds the consensus core's error taxonomy (spec §7):
// Malicious, reported to the host via slashing; Temporal, silently
// dropped; and Fatal, an internal invariant violation the core panics on
// rather than propagates.
package cserr

import (
	"errors"
	"fmt"

	"github.com/quorumkit/tendermint/ext"
)

// ErrTemporal means the message cannot be evaluated right now (wrong
// height, or a block not yet validatable). It carries no state and is
// always handled the same way: drop silently.
var ErrTemporal = errors.New("tendermint: message cannot be evaluated now")

// MaliciousError is a provable protocol violation by Validator. The caller
// is expected to slash Validator and stop propagating the offending
// message.
type MaliciousError struct {
	Validator ext.ValidatorID
}

func (e *MaliciousError) Error() string {
	return fmt.Sprintf("tendermint: malicious behavior by validator %s", e.Validator)
}

// Malicious wraps v as a *MaliciousError.
func Malicious(v ext.ValidatorID) error {
	return &MaliciousError{Validator: v}
}

// AsMalicious reports whether err is a *MaliciousError and, if so, returns
// the offending validator.
func AsMalicious(err error) (ext.ValidatorID, bool) {
	var me *MaliciousError
	if errors.As(err, &me) {
		return me.Validator, true
	}
	return ext.ValidatorID{}, false
}

// Fatalf panics: a violated local invariant means a bug in the host or this
// module, not a condition the core can recover from (spec §7).
func Fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf("tendermint: fatal: "+format, args...))
}
