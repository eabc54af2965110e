package entity

// commonWords is the exclusion list for the bare-uppercase pass: frequent
// English words and forum abbreviations that would otherwise be mistaken
// for tickers when shouted in caps.
var commonWords = map[string]bool{
	"AM": true, "AN": true, "AS": true, "AT": true, "BE": true, "BY": true,
	"DD": true, "DO": true, "GO": true, "IF": true, "IN": true, "IS": true,
	"IT": true, "ME": true, "MY": true, "NO": true, "OF": true, "OK": true,
	"ON": true, "OR": true, "SO": true, "TO": true, "UP": true, "US": true,
	"WE": true,
	"ALL": true, "AND": true, "ANY": true, "ARE": true, "BUT": true,
	"CAN": true, "DAY": true, "DID": true, "FOR": true, "GET": true,
	"GOT": true, "HAS": true, "HAD": true, "HER": true, "HIM": true,
	"HIS": true, "HOW": true, "ITS": true, "LET": true, "LOT": true,
	"MAY": true, "NEW": true, "NOT": true, "NOW": true, "OLD": true,
	"ONE": true, "OUR": true, "OUT": true, "OWN": true, "PUT": true,
	"RUN": true, "SAY": true, "SEE": true, "SET": true, "SHE": true,
	"THE": true, "TOO": true, "TWO": true, "USE": true, "WAY": true,
	"WHO": true, "WHY": true, "WIN": true, "WON": true, "YET": true,
	"YOU": true,
	"ALSO": true, "BACK": true, "BEEN": true, "CALL": true, "COME": true,
	"DOES": true, "DOWN": true, "EACH": true, "EVEN": true, "FIND": true,
	"FROM": true, "GAVE": true, "GOOD": true, "HAVE": true, "HERE": true,
	"HIGH": true, "HOLD": true, "HOPE": true, "JUST": true, "KEEP": true,
	"KNOW": true, "LAST": true, "LIKE": true, "LONG": true, "LOOK": true,
	"MADE": true, "MAKE": true, "MANY": true, "MORE": true, "MOST": true,
	"MUCH": true, "MUST": true, "NEED": true, "NEXT": true, "ONLY": true,
	"OPEN": true, "OVER": true, "PART": true, "PAST": true, "PLAY": true,
	"SAME": true, "SAID": true, "SELL": true, "SOME": true, "SURE": true,
	"TAKE": true, "TELL": true, "THAN": true, "THAT": true, "THEM": true,
	"THEN": true, "THEY": true, "THIS": true, "TIME": true, "VERY": true,
	"WANT": true, "WELL": true, "WENT": true, "WERE": true, "WHAT": true,
	"WHEN": true, "WILL": true, "WITH": true, "WORK": true, "YEAR": true,
	"YOUR": true,
	"ABOUT": true, "AFTER": true, "BEING": true, "COULD": true,
	"EVERY": true, "FIRST": true, "GOING": true, "GREAT": true,
	"NEVER": true, "OTHER": true, "PLACE": true, "RIGHT": true,
	"SHALL": true, "SINCE": true, "STILL": true, "THEIR": true,
	"THERE": true, "THESE": true, "THING": true, "THINK": true,
	"THOSE": true, "UNTIL": true, "WATCH": true, "WHICH": true,
	"WHILE": true, "WORLD": true, "WOULD": true,

	// forum/finance abbreviations that are not tickers
	"IMO": true, "IMHO": true, "TBH": true, "YOLO": true, "FOMO": true,
	"HODL": true, "LMAO": true, "ROFL": true, "TLDR": true, "WSB": true,
	"SEC": true, "NYSE": true, "IPO": true, "CEO": true, "CFO": true,
	"CTO": true, "ETF": true, "GDP": true, "CPI": true, "ATH": true,
	"ATL": true, "OTC": true, "NFT": true, "DAO": true, "DCA": true,
	"RSI": true, "EPS": true, "PE": true, "ROI": true, "APY": true,
	"APR": true, "EDIT": true, "LINK": true, "POST": true, "PUMP": true,
	"DUMP": true, "MOON": true, "BEAR": true, "BULL": true, "SHORT": true,
}
