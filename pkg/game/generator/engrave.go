package generator

import (
	"strings"

	"delvegen/pkg/engine/rng"
)

// rubouts lists what a partly wiped character may degrade into.
var rubouts = map[byte]string{
	'A': "^", 'B': "Pb[", 'C': "(", 'D': "|)[", 'E': "|FL[_", 'F': "|-", 'G': "C(",
	'H': "|-", 'I': "|", 'K': "|<", 'L': "|_", 'M': "|", 'N': "|\\", 'O': "C(",
	'P': "F", 'Q': "C(", 'R': "PF", 'T': "|", 'U': "J", 'V': "/\\", 'W': "V/\\",
	'Z': "/", 'b': "|", 'd': "c|", 'e': "c", 'g': "c", 'h': "n", 'j': "i", 'k': "|",
	'l': "|", 'm': "nr", 'n': "r", 'o': "c", 'q': "c", 'w': "v", 'y': "v",
	':': ".", ';': ",:", ',': ".", '=': "-", '+': "-|", '*': "+", '@': "0",
	'0': "C(", '1': "|", '6': "o", '7': "/", '8': "3o",
}

// wipeout degrades cnt random characters of text. Each pick draws the
// position and whether to rub the character out; rubbed characters may
// draw once more for their replacement.
func wipeout(r *rng.RNG, text string, cnt int) string {
	buf := []byte(text)
	n := len(buf)
	if n == 0 {
		return text
	}
	for ; cnt > 0; cnt-- {
		nxt := r.Rn2(n)
		useRubout := r.Rn2(4)
		ch := buf[nxt]
		if ch == ' ' {
			continue
		}
		if strings.IndexByte("?.,'`-|_", ch) >= 0 {
			buf[nxt] = ' '
			continue
		}
		if useRubout == 0 {
			buf[nxt] = '?'
			continue
		}
		if to, ok := rubouts[ch]; ok {
			buf[nxt] = to[r.Rn2(len(to))]
		} else {
			buf[nxt] = '?'
		}
	}
	return strings.TrimRight(string(buf), " ")
}

var graffiti = []string{
	"Elbereth",
	"Vlad was here",
	"ad aerarium",
	"Owlbreath",
	"Galadriel",
	"Kilroy was here",
	"A.S. ->",
	"<- A.S.",
	"You won't get it up the steps",
	"Lasciate ogni speranza O voi ch'entrate.",
	"Well Come",
	"We apologize for the inconvenience.",
	"See you next Wednesday",
	"notary sojak",
	"For a good time call 8?7-5309",
	"Please don't feed the animals.",
	"Madam, in Eden, I'm Adam.",
	"Two thumbs up!",
	"Hello, World!",
	"You've got mail!",
	"As if!",
}

var rumors = []string{
	"A blindfold can be very useful if you're telepathic.",
	"Cursed potions of gain level will send you up a level.",
	"Dig for victory here.",
	"Elbereth has quite a reputation around these parts.",
	"Engrave Elbereth in the dust to scare most monsters.",
	"Some fountains are better left alone.",
	"The leprechaun hoards gold in his hall.",
	"They say that shopkeepers never forget a face.",
	"Thou shalt not steal.",
	"Vaults are often surrounded by solid rock.",
}

var epitaphs = []string{
	"Rest in peace",
	"R.I.P.",
	"Rest In Pieces",
	"Note -- there are NO valuable items in this grave",
	"1994-1995. The Longest-Lived Hacker Ever",
	"The Grave of the Unknown Hacker",
	"We weren't sure who this was, but we buried him here anyway",
	"Sparky -- he was a very good dog",
	"Beware of Electric Third Rail",
	"Made in Taiwan",
	"Og friend. Og good dude. Og died. Og now food",
	"Beetlejuice Beetlejuice Beetlejuice",
	"Look out below!",
	"Please don't dig me up. I'm perfectly happy down here. -- Resident",
	"Postman, please note forwarding address: Gehennom, Asmodeus's Fortress, fifth lemure on the left",
	"Mary had a little lamb/Its fleece was white as snow/When Mary was in trouble/The lamb was first to go",
	"Be careful, or this could happen to you!",
	"Soon you'll join this fellow in hell! -- the Wizard of Yendor",
	"Caution! This grave contains toxic waste",
	"Sum quod eris",
}

// randomEngraving returns a graffiti or rumor text, already worn by
// time.
func randomEngraving(r *rng.RNG) string {
	var text string
	if r.Rn2(4) == 0 {
		text = graffiti[r.Rn2(len(graffiti))]
	} else {
		text = rumors[r.Rn2(len(rumors))]
	}
	return wipeout(r, text, len(text)/4)
}

// randomEpitaph picks a headstone text.
func randomEpitaph(r *rng.RNG) string {
	return epitaphs[r.Rn2(len(epitaphs))]
}
