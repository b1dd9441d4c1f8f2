package grammar

import "estsoil-loimis/soil"

const (
	subscriptDigits = "₁₂₃₄₅"
	plainAmpDigits  = "12345"
	asciiDigits     = "0123456789"
)

// Fine-earth codes, longest first so shorter prefixes never shadow them.
var fineEarthCodes = []string{"plsl", "pl", "tsl", "tls", "dk", "sl", "ls", "s", "l"}

// Skeleton codes that never take an amplifier.
var plainSkeletonCodes = []string{soil.NoInfo, "pk", "kr", "p", "d", "lu", "ck"}

// Skeleton codes that may carry an amplifier, with their boulder-marked variants.
var amplifiedSkeletonCodes = []string{
	"r⁰", "r°", "r",
	"v⁰", "v°", "v",
	"kb⁰", "kb°", "kb",
	"k⁰", "k°", "k",
}

// terminals are the building blocks shared by every dialect.
type terminals struct {
	carbonate expr
	amplifier expr
	depth     expr
	skeleton  expr
	peat      expr
	fineEarth expr
	// constituent is any single constituent.
	constituent expr
	// unit is a non-empty canonical skeleton? peat? fine? group.
	unit expr
}

func newTerminals() terminals {
	var t terminals

	digit := runeSet(asciiDigits)
	number := capture{NodeNumber, plus{digit}}

	t.carbonate = capture{NodeCarbonate, literal("+")}

	// A plain digit is an amplifier only when it does not start a number or range.
	t.amplifier = capture{NodeAmplifier, alt{
		runeSet(subscriptDigits),
		seq{runeSet(plainAmpDigits), not{runeSet(asciiDigits + "-")}},
	}}

	t.depth = capture{NodeDepth, seq{
		opt{capture{NodeDeeperThan, literal("+")}},
		number,
		star{seq{literal("-"), number}},
	}}

	// A trailing '+' marks carbonate only when no depth number follows.
	trailingCarbonate := capture{NodeCarbonate, seq{literal("+"), not{digit}}}

	plainSkeleton := make(alt, 0, len(plainSkeletonCodes))
	for _, code := range plainSkeletonCodes {
		switch code {
		case "p":
			plainSkeleton = append(plainSkeleton, seq{literal(code), not{literal("l")}})
		case "d":
			plainSkeleton = append(plainSkeleton, seq{literal(code), not{literal("k")}})
		default:
			plainSkeleton = append(plainSkeleton, literal(code))
		}
	}

	t.skeleton = capture{NodeSkeleton, seq{
		opt{t.carbonate},
		alt{
			capture{NodeCode, plainSkeleton},
			seq{capture{NodeCode, lits(amplifiedSkeletonCodes...)}, opt{t.amplifier}},
		},
		opt{t.depth},
	}}

	peatCode := alt{
		literal("th"),
		seq{literal("t"), not{lits("ls", "sl")}},
	}

	t.peat = capture{NodePeat, seq{
		opt{t.carbonate},
		capture{NodeCode, peatCode},
		opt{t.amplifier},
		opt{trailingCarbonate},
		opt{t.depth},
	}}

	t.fineEarth = capture{NodeFineEarth, seq{
		opt{t.carbonate},
		capture{NodeCode, lits(fineEarthCodes...)},
		opt{t.amplifier},
		opt{trailingCarbonate},
		opt{t.depth},
	}}

	t.constituent = alt{t.skeleton, t.peat, t.fineEarth}

	t.unit = alt{
		seq{t.skeleton, opt{t.peat}, opt{t.fineEarth}},
		seq{t.peat, opt{t.fineEarth}},
		t.fineEarth,
	}

	return t
}
