package sentiment

// Bullish/bearish slang seen on retail investing forums. Matched as
// case-insensitive substrings of a post's full text; each hit nudges the
// ratio-based score by a fixed increment in its direction.
var bullishKeywords = []string{
	"bullish", "calls", "long", "buy", "moon", "to the moon", "rocket",
	"diamond hands", "tendies", "undervalued", "breakout", "squeeze",
	"gamma squeeze", "short squeeze", "going up", "buy the dip", "btfd",
	"loading up", "all in", "yolo", "lets go", "lfg",
}

var bearishKeywords = []string{
	"bearish", "puts", "short", "sell", "crash", "dump", "overvalued",
	"bubble", "bag holder", "bagholding", "loss porn", "guh", "rip",
	"dead cat bounce", "going down", "top is in", "exit", "taking profits",
	"rug pull", "scam", "ponzi",
}
