package fuzztests

import (
	"testing"
)

const maxFuzzInput = 1 << 16 // 64 KiB

var seeds = []string{
	"",
	"$c wff |- $.\n",
	"$( comment with $[ words $] $)\n",
	"${ $v ph ps $. $d ph ps $. $}\n",
	"ax-1 $a |- ( ph -> ( ps -> ph ) ) $.\n",
	"th1 $p |- ph $= ax-1 ? $.\n",
	"th2 $p |- ph $= ( ax-1 ax-mp ) ABCZD $.\n",
	"ax $( c $) $a wff ph $.\nth $p wff ph $= $( x $) ( ax ) A $( y $) B $.\n",
	"$[ missing.mm $]\n",
	"$[ $]",
	"$( unterminated",
	"th $p a $= ( x",
	"$x $y",
	"\t\f\r\n",
	"${ ${ $} ",
}

func addSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
