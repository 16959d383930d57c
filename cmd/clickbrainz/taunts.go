package main

// Built-in taunt pool. One of these is shown when the taunt roll fires and no
// remote taunt is cached. Keep entries at or under 32 characters so the
// scroller never has to deal with the truly absurd.
var localTaunts = []string{
	"That's it?",
	"My grandma clicks faster",
	"Weak.",
	"Keep going, champ",
	"Impressive... not",
	"Is that all you got?",
	"Pathetic clicking",
	"Try harder",
	"Yawn...",
	"Are you even trying?",
	"Click like you mean it",
	"Amateur hour",
	"Sad.",
	"More! MORE!",
	"You call that clicking?",
	"I've seen better",
	"Really?",
	"Oh wow, a click",
	"Groundbreaking stuff",
	"Revolutionary clicking",
	"History in the making",
	"Alert the press",
	"Legendary...",
	"Peak performance",
	"Your finger tired yet?",
	"Slow clap",
	"Do you even lift?",
	"My cat clicks better",
	"Zzzzz...",
	"Wake me when done",
	"Still going?",
	"Bless your heart",
	"A for effort",
	"Participation trophy",
	"So brave",
	"Much click. Wow.",
	"Error 404: skill",
	"Have you tried harder?",
	"Bold strategy",
	"Fascinating...",
	"Cool story bro",
	"K.",
	"Neat.",
	"Riveting stuff",
	"Edge of my seat",
	"Thrilling",
	"Stop. Don't. Come back.",
	"Oh no... anyway",
	"Press F to pay respects",
	"git gud",
	":P",
	";P",
	"-_-",
	"._.",
	">_<",
	"^_^",
	"o_O",
	"T_T",
	"(._. )",
	"( -_-)",
	"\\(o_o)/",
	"(-_-)zzZ",
	"*slow clap*",
	"...really?",
	"Un-BUTTON-lievable",
	"This is pressing",
	"Button your lip",
	"Push comes to shove",
	"You're on a roll",
	"Click bait",
	"Pushing my buttons",
	"That was riveting",
	"Key performance",
	"Tactile genius",
	"Finger lickin good",
	"Digit-al art",
	"Count on it",
	"Number one fan",
	"Sum-thing else",
}

// Shown when the score is reset by hand. These skip the remote cache; a reset
// deserves an immediate jab, not a network round trip.
var resetTaunts = []string{
	"Giving up already?",
	"Back to zero, loser",
	"Rage quit?",
	"Starting fresh, huh?",
	"Couldn't handle it?",
	"The walk of shame",
	"Reset of defeat",
}

type easterEgg struct {
	Score   int64
	Text    string
	Pattern EggPattern
}

// Scores with dedicated reactions. Hitting one plays its animation and pins
// its message; the regular milestone and taunt logic is skipped for that tap.
var easterEggs = map[int64]easterEgg{
	69:    {Score: 69, Text: "Nice.", Pattern: EggWink},
	420:   {Score: 420, Text: "Blaze it", Pattern: EggFlames},
	666:   {Score: 666, Text: "\\m/ HAIL \\m/", Pattern: EggHorns},
	1337:  {Score: 1337, Text: "L33T H4X0R", Pattern: EggMatrix},
	80085: {Score: 80085, Text: "Really?", Pattern: EggEyeroll},
}
