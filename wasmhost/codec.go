package wasmhost

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/errors"
)

// Move blob layout: one tag byte, then either an 8-byte little-endian
// move code (tag 0) or the raw variable payload (tag 1). The tag keeps
// a zero-length payload distinguishable from a fixed code.
const (
	moveTagCode byte = 0
	moveTagBig  byte = 1
)

func encodeMoveBlob(w abi.MoveDataWire) []byte {
	if w.Data == nil {
		blob := make([]byte, 9)
		blob[0] = moveTagCode
		binary.LittleEndian.PutUint64(blob[1:], uint64(w.Code))
		return blob
	}
	blob := make([]byte, 1+len(w.Data))
	blob[0] = moveTagBig
	copy(blob[1:], w.Data)
	return blob
}

func decodeMoveBlob(blob []byte) (abi.MoveDataWire, error) {
	if len(blob) == 0 {
		return abi.MoveDataWire{}, errors.InvalidInput(errors.PhaseDecode, "empty move blob")
	}
	switch blob[0] {
	case moveTagCode:
		if len(blob) != 9 {
			return abi.MoveDataWire{}, errors.InvalidInput(errors.PhaseDecode,
				"fixed-code move blob must be 9 bytes, got %d", len(blob))
		}
		return abi.MoveDataWire{Code: abi.MoveCode(binary.LittleEndian.Uint64(blob[1:]))}, nil
	case moveTagBig:
		data := blob[1:]
		if data == nil {
			data = []byte{}
		}
		return abi.MoveDataWire{Data: data}, nil
	default:
		return abi.MoveDataWire{}, errors.InvalidInput(errors.PhaseDecode,
			"unknown move blob tag %d", blob[0])
	}
}

// Move list blob: u32 count, then each move as u32 length + blob.
func decodeMoveListBlob(blob []byte) ([]abi.MoveDataWire, error) {
	if len(blob) < 4 {
		return nil, errors.InvalidInput(errors.PhaseDecode, "move list blob too short")
	}
	count := binary.LittleEndian.Uint32(blob)
	blob = blob[4:]
	out := make([]abi.MoveDataWire, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(blob) < 4 {
			return nil, errors.InvalidInput(errors.PhaseDecode, "move list blob truncated")
		}
		n := binary.LittleEndian.Uint32(blob)
		blob = blob[4:]
		if uint32(len(blob)) < n {
			return nil, errors.InvalidInput(errors.PhaseDecode, "move list blob truncated")
		}
		w, err := decodeMoveBlob(blob[:n])
		if err != nil {
			return nil, err
		}
		blob = blob[n:]
		out = append(out, w)
	}
	return out, nil
}

// Sizer blob: the bounds struct serialized little-endian in field order.
const sizerBlobLen = 1 + 1 + 4 + 4 + 1 + 8*4

func decodeSizerBlob(blob []byte) (abi.BufSizer, error) {
	if len(blob) != sizerBlobLen {
		return abi.BufSizer{}, errors.InvalidInput(errors.PhaseDecode,
			"sizer blob must be %d bytes, got %d", sizerBlobLen, len(blob))
	}
	var s abi.BufSizer
	s.PlayerCount = blob[0]
	s.MaxPlayersToMove = blob[1]
	s.MaxMoves = binary.LittleEndian.Uint32(blob[2:])
	s.MaxActions = binary.LittleEndian.Uint32(blob[6:])
	s.MaxResults = blob[10]
	s.StateStr = binary.LittleEndian.Uint64(blob[11:])
	s.MoveStr = binary.LittleEndian.Uint64(blob[19:])
	s.OptionsStr = binary.LittleEndian.Uint64(blob[27:])
	s.PrintStr = binary.LittleEndian.Uint64(blob[35:])
	return s, nil
}

// metadata is the parsed pb_describe payload: five newline-separated
// fields (game, variant, impl, version, feature bits).
type metadata struct {
	GameName    string
	VariantName string
	ImplName    string
	Version     abi.Semver
	Features    abi.GameFeatureFlags
}

// wasmFeatureMask is the feature subset the wasm wire format carries.
var wasmFeatureMask = abi.GameFeatureFlags{
	Options:  true,
	Print:    true,
	BigMoves: true,
}

func parseDescribe(s string) (metadata, error) {
	fields := strings.Split(s, "\n")
	if len(fields) != 5 {
		return metadata{}, errors.InvalidInput(errors.PhaseDecode,
			"describe string must have 5 fields, got %d", len(fields))
	}
	ver, err := parseSemver(fields[3])
	if err != nil {
		return metadata{}, err
	}
	bits, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return metadata{}, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Cause(err).
			Detail("invalid feature bits %q", fields[4]).
			Build()
	}
	return metadata{
		GameName:    fields[0],
		VariantName: fields[1],
		ImplName:    fields[2],
		Version:     ver,
		Features:    maskFeatures(abi.GameFeaturesFromBits(bits)),
	}, nil
}

func maskFeatures(f abi.GameFeatureFlags) abi.GameFeatureFlags {
	return abi.GameFeatureFlags{
		Options:  f.Options && wasmFeatureMask.Options,
		Print:    f.Print && wasmFeatureMask.Print,
		BigMoves: f.BigMoves && wasmFeatureMask.BigMoves,
	}
}

func parseSemver(s string) (abi.Semver, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return abi.Semver{}, errors.InvalidInput(errors.PhaseDecode, "invalid version %q", s)
	}
	var nums [3]uint32
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return abi.Semver{}, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Cause(err).
				Detail("invalid version %q", s).
				Build()
		}
		nums[i] = uint32(n)
	}
	return abi.Semver{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Init blob for the standard kind: three optional string fields (opts,
// legacy, state), each one presence byte then u32 length then bytes.
func encodeInitBlob(init *abi.GameInit) []byte {
	switch init.Kind {
	case abi.GameInitSerialized:
		return init.Serialized
	case abi.GameInitStandard:
		var blob []byte
		for _, f := range []*string{init.Opts, init.Legacy, init.State} {
			if f == nil {
				blob = append(blob, 0)
				continue
			}
			blob = append(blob, 1)
			blob = binary.LittleEndian.AppendUint32(blob, uint32(len(*f)))
			blob = append(blob, *f...)
		}
		return blob
	default:
		return nil
	}
}

// packed splits a ptr<<32|len pair.
func unpack(v uint64) (ptr, length uint32) {
	return uint32(v >> 32), uint32(v)
}
