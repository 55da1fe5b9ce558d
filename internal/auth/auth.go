// Package auth implements the frame authenticator: MAC verification,
// in-place decryption, magic-word sanity check and anti-replay
// (spec.md §4.2). Each check is a hard short-circuit — a failing
// packet is discarded with no side effect, and in particular lastSeq
// is touched only after every check has passed.
package auth

import (
	"robotctl.dev/internal/config"
	"robotctl.dev/internal/cryptoprim"
	"robotctl.dev/internal/wire"
)

// Authenticator holds the replay high-water mark for one packet
// stream. It is not safe for concurrent use — spec.md §5 assigns it
// exclusively to the real-time domain — and deliberately holds its
// state as a field rather than a package global, so independent
// streams (as in tests, or a multi-robot harness) don't share replay
// state, the way driver/tmc2209.Device holds its own bus/address
// instead of using package-level state.
type Authenticator struct {
	lastSeq   uint32
	haveFirst bool
}

// LastSeq returns the current replay high-water mark (IP3).
func (a *Authenticator) LastSeq() uint32 { return a.lastSeq }

// TryAdmit runs the fixed check order of spec.md §4.2 against frame
// and returns the authenticated, decrypted packet and true on
// success. On any failure it returns the zero Packet and false. frame
// itself is never modified: TryAdmit copies it into a Packet and
// decrypts that copy in place, only after the MAC has passed (IP1).
//
// Order is fixed: MAC, then decrypt, then magic, then replay. Magic is
// checked on the *plaintext*, after decryption, which means magic
// doubles as a sanity check on successfully-decrypted data rather than
// as a first line of defense — this is preserved exactly from the
// reference design rather than silently resolved (spec.md §9 open
// question 1): magic cannot prevent a bad decrypt (nothing can, short
// of an AEAD tag, which this wire format does not use), so its only
// remaining job is to catch format drift between host and device once
// authenticity is already established by the MAC.
func (a *Authenticator) TryAdmit(frame []byte) (wire.Packet, bool) {
	p := wire.Decode(frame)

	mac := cryptoprim.SipHash24(config.MACKey[0], config.MACKey[1], p.Bytes()[:wire.MACLen])
	if mac != p.MAC() {
		return wire.Packet{}, false
	}

	cryptoprim.ChaCha20XORInPlace(&config.CipherKey, p.Seq(), p.EncryptedRegion())

	if p.Magic() != config.MagicWord {
		return wire.Packet{}, false
	}

	seq := p.Seq()
	if a.haveFirst && seq <= a.lastSeq {
		return wire.Packet{}, false
	}
	a.lastSeq = seq
	a.haveFirst = true

	return p, true
}
