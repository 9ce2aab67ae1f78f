package analysis

// defaultLexicon maps lower-cased words to a valence on roughly [-4, 4].
// Values follow the scale of the VADER lexicon; neutral hedges such as
// "fine" or "okay" are deliberately absent.
var defaultLexicon = map[string]float64{
	// positive
	"love":        3.2,
	"loved":       2.9,
	"loving":      2.9,
	"loves":       2.7,
	"lovely":      2.8,
	"amazing":     2.8,
	"awesome":     3.1,
	"great":       3.1,
	"best":        3.2,
	"excellent":   2.7,
	"perfect":     2.7,
	"perfectly":   2.7,
	"fantastic":   2.6,
	"wonderful":   2.7,
	"brilliant":   2.8,
	"incredible":  2.4,
	"impressive":  2.3,
	"outstanding": 3.0,
	"superb":      3.1,
	"good":        1.9,
	"better":      1.9,
	"nice":        1.8,
	"happy":       2.7,
	"glad":        2.0,
	"enjoy":       2.2,
	"enjoyed":     2.3,
	"helpful":     1.7,
	"useful":      1.8,
	"easy":        1.9,
	"fast":        1.3,
	"reliable":    1.8,
	"recommend":   1.5,
	"recommended": 1.6,
	"thanks":      1.9,
	"thank":       1.5,
	"win":         2.8,
	"wins":        2.7,
	"success":     2.7,
	"solved":      1.8,
	"smooth":      1.4,
	"beautiful":   2.9,
	"favorite":    2.0,
	"exciting":    2.2,
	"excited":     1.4,
	"satisfied":   1.8,
	"fun":         2.3,
	"cool":        1.3,
	"improved":    1.6,
	"innovative":  1.9,
	"quality":     1.0,
	"affordable":  1.2,
	"seamless":    1.8,
	"gamechanger": 2.4,
	"worth":       0.9,
	"wow":         2.8,
	"yay":         2.4,
	"pleased":     1.9,
	"delighted":   2.9,
	"grateful":    2.0,
	"trust":       1.3,
	"safe":        1.9,
	"strong":      1.5,
	"support":     1.7,
	"supportive":  1.6,

	// negative
	"hate":          -2.7,
	"hated":         -3.2,
	"hates":         -1.9,
	"terrible":      -2.1,
	"awful":         -2.0,
	"horrible":      -2.5,
	"worst":         -3.1,
	"bad":           -2.5,
	"worse":         -2.1,
	"poor":          -2.1,
	"poorly":        -1.9,
	"problem":       -1.7,
	"problems":      -1.7,
	"difficult":     -1.5,
	"broken":        -1.9,
	"fail":          -2.5,
	"failed":        -2.3,
	"fails":         -2.0,
	"failure":       -2.3,
	"bug":           -0.9,
	"buggy":         -1.8,
	"error":         -1.2,
	"errors":        -1.4,
	"slow":          -1.2,
	"annoying":      -1.7,
	"angry":         -2.3,
	"sad":           -2.1,
	"disappointed":  -1.9,
	"disappointing": -2.2,
	"frustrated":    -2.0,
	"frustrating":   -1.9,
	"useless":       -1.8,
	"stupid":        -2.4,
	"ugly":          -2.3,
	"scam":          -2.7,
	"fake":          -2.1,
	"hoax":          -2.0,
	"conspiracy":    -1.4,
	"false":         -1.0,
	"lie":           -1.8,
	"lies":          -1.8,
	"crisis":        -3.1,
	"emergency":     -1.6,
	"disaster":      -3.1,
	"outage":        -1.8,
	"crash":         -1.7,
	"crashes":       -1.7,
	"pain":          -2.3,
	"painful":       -2.4,
	"expensive":     -0.8,
	"overpriced":    -1.8,
	"waste":         -1.8,
	"wasted":        -2.2,
	"sucks":         -1.5,
	"mess":          -1.5,
	"complaint":     -1.5,
	"complain":      -1.4,
	"unhappy":       -1.8,
	"unreliable":    -1.8,
	"dangerous":     -2.1,
	"risk":          -1.1,
	"angering":      -2.2,
	"wrong":         -2.1,
	"ridiculous":    -1.5,
	"weak":          -1.9,
	"boring":        -1.3,
	"confusing":     -1.3,
	"hard":          -0.4,
}

// negations flip the sign of a valence that follows within the window
var negations = map[string]struct{}{
	"not":       {},
	"no":        {},
	"never":     {},
	"none":      {},
	"nobody":    {},
	"nothing":   {},
	"neither":   {},
	"nor":       {},
	"nowhere":   {},
	"cannot":    {},
	"without":   {},
	"can't":     {},
	"cant":      {},
	"don't":     {},
	"dont":      {},
	"doesn't":   {},
	"doesnt":    {},
	"didn't":    {},
	"didnt":     {},
	"isn't":     {},
	"isnt":      {},
	"wasn't":    {},
	"wasnt":     {},
	"aren't":    {},
	"arent":     {},
	"won't":     {},
	"wont":      {},
	"wouldn't":  {},
	"wouldnt":   {},
	"shouldn't": {},
	"shouldnt":  {},
	"couldn't":  {},
	"couldnt":   {},
	"ain't":     {},
}

const (
	boosterIncrement = 0.293
	boosterDecrement = -0.293
)

// boosters scale the magnitude of the valence they precede
var boosters = map[string]float64{
	"very":          boosterIncrement,
	"really":        boosterIncrement,
	"extremely":     boosterIncrement,
	"so":            boosterIncrement,
	"absolutely":    boosterIncrement,
	"incredibly":    boosterIncrement,
	"totally":       boosterIncrement,
	"super":         boosterIncrement,
	"highly":        boosterIncrement,
	"truly":         boosterIncrement,
	"completely":    boosterIncrement,
	"utterly":       boosterIncrement,
	"remarkably":    boosterIncrement,
	"exceptionally": boosterIncrement,
	"slightly":      boosterDecrement,
	"somewhat":      boosterDecrement,
	"barely":        boosterDecrement,
	"kinda":         boosterDecrement,
	"marginally":    boosterDecrement,
	"partly":        boosterDecrement,
	"occasionally":  boosterDecrement,
	"hardly":        boosterDecrement,
}
