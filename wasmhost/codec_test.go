package wasmhost

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"testing"

	"github.com/playmesh/plugbridge/abi"
)

func TestMoveBlobRoundTrip(t *testing.T) {
	for _, w := range []abi.MoveDataWire{
		{Code: 0},
		{Code: 42},
		{Data: []byte("payload")},
		{Data: []byte{}},
	} {
		got, err := decodeMoveBlob(encodeMoveBlob(w))
		if err != nil {
			t.Fatalf("decode failed for %#v: %v", w, err)
		}
		if (got.Data == nil) != (w.Data == nil) {
			t.Fatalf("nilness changed: %#v -> %#v", w, got)
		}
		if got.Code != w.Code || !bytes.Equal(got.Data, w.Data) {
			t.Fatalf("round trip changed value: %#v -> %#v", w, got)
		}
	}
}

func TestDecodeMoveBlobRejectsGarbage(t *testing.T) {
	for _, blob := range [][]byte{
		nil,
		{},
		{moveTagCode},          // truncated code
		{moveTagCode, 1, 2, 3}, // short code
		{99, 1, 2},             // unknown tag
	} {
		if _, err := decodeMoveBlob(blob); err == nil {
			t.Fatalf("blob %v accepted", blob)
		}
	}
}

func TestDecodeMoveListBlob(t *testing.T) {
	var blob []byte
	blob = binary.LittleEndian.AppendUint32(blob, 2)
	for _, w := range []abi.MoveDataWire{{Code: 7}, {Data: []byte("x")}} {
		b := encodeMoveBlob(w)
		blob = binary.LittleEndian.AppendUint32(blob, uint32(len(b)))
		blob = append(blob, b...)
	}

	moves, err := decodeMoveListBlob(blob)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("got %d moves", len(moves))
	}
	if moves[0].Code != 7 || moves[0].Data != nil {
		t.Fatalf("move 0 wrong: %#v", moves[0])
	}
	if !bytes.Equal(moves[1].Data, []byte("x")) {
		t.Fatalf("move 1 wrong: %#v", moves[1])
	}

	if _, err := decodeMoveListBlob(blob[:len(blob)-1]); err == nil {
		t.Fatalf("truncated list accepted")
	}
}

func TestSizerBlobRoundTrip(t *testing.T) {
	want := abi.BufSizer{
		PlayerCount:      2,
		MaxPlayersToMove: 1,
		MaxMoves:         3,
		MaxActions:       4,
		MaxResults:       1,
		StateStr:         16,
		MoveStr:          8,
		OptionsStr:       12,
		PrintStr:         20,
	}

	blob := make([]byte, sizerBlobLen)
	blob[0] = want.PlayerCount
	blob[1] = want.MaxPlayersToMove
	binary.LittleEndian.PutUint32(blob[2:], want.MaxMoves)
	binary.LittleEndian.PutUint32(blob[6:], want.MaxActions)
	blob[10] = want.MaxResults
	binary.LittleEndian.PutUint64(blob[11:], want.StateStr)
	binary.LittleEndian.PutUint64(blob[19:], want.MoveStr)
	binary.LittleEndian.PutUint64(blob[27:], want.OptionsStr)
	binary.LittleEndian.PutUint64(blob[35:], want.PrintStr)

	got, err := decodeSizerBlob(blob)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != want {
		t.Fatalf("got %#v, want %#v", got, want)
	}

	if _, err := decodeSizerBlob(blob[:10]); err == nil {
		t.Fatalf("short sizer blob accepted")
	}
}

func TestParseDescribe(t *testing.T) {
	meta, err := parseDescribe("Nim\nStandard\nwasm\n0.1.2\n3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if meta.GameName != "Nim" || meta.VariantName != "Standard" || meta.ImplName != "wasm" {
		t.Fatalf("names wrong: %#v", meta)
	}
	if meta.Version != (abi.Semver{Major: 0, Minor: 1, Patch: 2}) {
		t.Fatalf("version wrong: %#v", meta.Version)
	}
	if !meta.Features.Options || !meta.Features.Print {
		t.Fatalf("features wrong: %#v", meta.Features)
	}
}

func TestParseDescribeMasksUnsupportedFeatures(t *testing.T) {
	bits := abi.GameFeatureFlags{
		Options:           true,
		RandomMoves:       true,
		HiddenInformation: true,
		BigMoves:          true,
	}.Bits()
	meta, err := parseDescribe("G\nV\nI\n1.0.0\n" + strconv.FormatUint(bits, 10))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if meta.Features.RandomMoves || meta.Features.HiddenInformation {
		t.Fatalf("unsupported features not masked: %#v", meta.Features)
	}
	if !meta.Features.Options || !meta.Features.BigMoves {
		t.Fatalf("supported features lost: %#v", meta.Features)
	}
}

func TestParseDescribeRejectsGarbage(t *testing.T) {
	for _, s := range []string{
		"",
		"only\nfour\nfields\nhere",
		"G\nV\nI\nnot-a-version\n0",
		"G\nV\nI\n1.0.0\nnot-bits",
	} {
		if _, err := parseDescribe(s); err == nil {
			t.Fatalf("describe %q accepted", s)
		}
	}
}

func TestEncodeInitBlob(t *testing.T) {
	if got := encodeInitBlob(&abi.GameInit{Kind: abi.GameInitDefault}); got != nil {
		t.Fatalf("default init blob not empty: %v", got)
	}

	opts := "21 3"
	blob := encodeInitBlob(&abi.GameInit{Kind: abi.GameInitStandard, Opts: &opts})
	// opts present, legacy and state absent
	if blob[0] != 1 {
		t.Fatalf("opts presence byte wrong")
	}
	n := binary.LittleEndian.Uint32(blob[1:])
	if string(blob[5:5+n]) != "21 3" {
		t.Fatalf("opts payload wrong: %q", blob[5:5+n])
	}
	rest := blob[5+n:]
	if len(rest) != 2 || rest[0] != 0 || rest[1] != 0 {
		t.Fatalf("absent fields encoded wrong: %v", rest)
	}

	raw := []byte{1, 2, 3}
	if got := encodeInitBlob(&abi.GameInit{Kind: abi.GameInitSerialized, Serialized: raw}); !bytes.Equal(got, raw) {
		t.Fatalf("serialized blob wrong: %v", got)
	}
}
