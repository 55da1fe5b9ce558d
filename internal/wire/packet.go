// Package wire defines the fixed 64-byte packet layout exchanged
// between the off-chip host and the real-time core, byte-packed and
// little-endian with no padding (spec.md §6), and the Action value
// passed from the policy VM to dispatch. Action is an in-memory Go
// struct only; this package defines no byte encoding for it.
// Packet wraps a raw [64]byte and exposes named
// accessors over fixed offsets, the way uf2.blockHeader wraps a raw
// byte array rather than defining a Go struct the compiler is free to
// pad or reorder.
package wire

import "encoding/binary"

// Size is the fixed wire size of a packet in bytes.
const Size = 64

// AuxWords is the number of int16 auxiliary words carried per packet.
const AuxWords = 18

// Field offsets, matching spec.md §6 exactly.
const (
	offMagic    = 0
	offVersion  = 4
	offModelID  = 6
	offSeq      = 8
	offTMs      = 12
	offIntentID = 16
	offConfQ15  = 18
	offAux      = 20
	offMAC      = 56

	// EncryptOffset and EncryptLen bound the region ChaCha20 covers:
	// intent_id, conf_q15 and all 18 aux words.
	EncryptOffset = offIntentID
	EncryptLen    = offMAC - offIntentID

	// MACLen is the number of leading bytes the MAC is computed over
	// (everything except the trailing 8-byte MAC field itself).
	MACLen = offMAC
)

// Packet is a fixed 64-byte wire frame. The zero value is not a valid
// packet (magic is 0); always populate through Decode or the setters.
type Packet struct {
	b [Size]byte
}

// Decode copies frame into a new Packet. frame must be exactly Size
// bytes; callers (the queue consumer) are expected to have already
// validated the length at the SPI/ingress boundary.
func Decode(frame []byte) Packet {
	var p Packet
	copy(p.b[:], frame)
	return p
}

// Bytes returns the packet's raw 64-byte wire representation. The
// returned slice aliases the packet's internal storage; callers that
// mutate it (the authenticator's in-place decrypt) are expected to,
// by the ownership rule in spec.md §9: after dequeue, the real-time
// domain exclusively owns the buffer.
func (p *Packet) Bytes() []byte { return p.b[:] }

func (p *Packet) Magic() uint32    { return binary.LittleEndian.Uint32(p.b[offMagic:]) }
func (p *Packet) Version() uint16  { return binary.LittleEndian.Uint16(p.b[offVersion:]) }
func (p *Packet) ModelID() uint16  { return binary.LittleEndian.Uint16(p.b[offModelID:]) }
func (p *Packet) Seq() uint32      { return binary.LittleEndian.Uint32(p.b[offSeq:]) }
func (p *Packet) TMillis() uint32  { return binary.LittleEndian.Uint32(p.b[offTMs:]) }
func (p *Packet) IntentID() uint16 { return binary.LittleEndian.Uint16(p.b[offIntentID:]) }

// ConfQ15 returns the confidence in Q15 fixed point: integer/32768
// represents a value in [0,1].
func (p *Packet) ConfQ15() uint16 { return binary.LittleEndian.Uint16(p.b[offConfQ15:]) }

// Confidence returns ConfQ15/32768 as a float32: 0 for 0, 1.0 for 32768.
func (p *Packet) Confidence() float32 {
	return float32(p.ConfQ15()) / 32768
}

// Aux returns the i'th auxiliary int16 word, 0 <= i < AuxWords.
func (p *Packet) Aux(i int) int16 {
	off := offAux + 2*i
	return int16(binary.LittleEndian.Uint16(p.b[off:]))
}

func (p *Packet) MAC() uint64 { return binary.LittleEndian.Uint64(p.b[offMAC:]) }

// EncryptedRegion returns the 40-byte slice ChaCha20 covers, aliasing
// the packet's storage so decryption can happen in place.
func (p *Packet) EncryptedRegion() []byte {
	return p.b[EncryptOffset : EncryptOffset+EncryptLen]
}

// Setters, used by tests and by the (out-of-scope) host-side encoder
// this controller doesn't ship but that its tests stand in for.

func (p *Packet) SetMagic(v uint32)    { binary.LittleEndian.PutUint32(p.b[offMagic:], v) }
func (p *Packet) SetVersion(v uint16)  { binary.LittleEndian.PutUint16(p.b[offVersion:], v) }
func (p *Packet) SetModelID(v uint16)  { binary.LittleEndian.PutUint16(p.b[offModelID:], v) }
func (p *Packet) SetSeq(v uint32)      { binary.LittleEndian.PutUint32(p.b[offSeq:], v) }
func (p *Packet) SetTMillis(v uint32)  { binary.LittleEndian.PutUint32(p.b[offTMs:], v) }
func (p *Packet) SetIntentID(v uint16) { binary.LittleEndian.PutUint16(p.b[offIntentID:], v) }
func (p *Packet) SetConfQ15(v uint16)  { binary.LittleEndian.PutUint16(p.b[offConfQ15:], v) }

func (p *Packet) SetAux(i int, v int16) {
	off := offAux + 2*i
	binary.LittleEndian.PutUint16(p.b[off:], uint16(v))
}

func (p *Packet) SetMAC(v uint64) { binary.LittleEndian.PutUint64(p.b[offMAC:], v) }
