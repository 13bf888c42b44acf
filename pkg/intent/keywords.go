package intent

// Keyword precedence is Variphi > NVR > General; first match wins. Variphi and
// NVR phrases are specific enough for plain substring containment. Greeting
// words are short and collide with ordinary words ("hi" in "history"), so
// messages under ShortMessageLength require a whole-token match.

const ShortMessageLength = 15

var VariphiKeywords = []string{
	"variphi",
	"vari phi",
	"who founded",
	"founder",
	"nitish mishra",
	"company mission",
	"company vision",
	"ai company",
}

var NvrKeywords = []string{
	"nvr",
	"rtsp",
	"rtmp",
	"hls",
	"streaming",
	"stream quality",
	"recording schedule",
	"playback",
	"codec",
	"bitrate",
	"h.264",
	"h.265",
	"retention",
	"storage management",
	"motion detection",
}

var GeneralKeywords = []string{
	"hi",
	"hello",
	"hey",
	"thanks",
	"thank you",
	"bye",
	"goodbye",
	"good morning",
	"good afternoon",
	"good evening",
	"how are you",
}

// greeting buckets for canned replies
var (
	GreetingKeywords = map[string]bool{
		"hi": true, "hello": true, "hey": true,
		"good morning": true, "good afternoon": true, "good evening": true,
		"how are you": true,
	}
	ThanksKeywords = map[string]bool{"thanks": true, "thank you": true}
	ByeKeywords    = map[string]bool{"bye": true, "goodbye": true}
)
