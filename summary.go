package compass

// Summary is the terminal payload of a completed check-in session.
type Summary struct {
	SessionID      string
	Date           string // ISO-8601 date
	Text           string
	PrimaryEmotion string // empty when the backend could not extract one
	Intensity      int    // 1-10; zero when omitted
}

// EmotionEntry is one point of a user's emotion history.
type EmotionEntry struct {
	Date      string
	Emotion   string
	Intensity int
	SessionID string
}

// SessionDigest is a listing row for a recently completed session.
type SessionDigest struct {
	ID             string
	Date           string
	Summary        string
	PrimaryEmotion string
	Intensity      int
}
