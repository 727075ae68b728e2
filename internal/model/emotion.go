package model

// Emotion is one of the fixed labels a detection can carry.
type Emotion string

const (
	Happy     Emotion = "happy"
	Sad       Emotion = "sad"
	Angry     Emotion = "angry"
	Surprised Emotion = "surprised"
	Fear      Emotion = "fear"
	Disgust   Emotion = "disgust"
	Neutral   Emotion = "neutral"
)

// Emotions lists every label in display order.
var Emotions = []Emotion{Happy, Sad, Angry, Surprised, Fear, Disgust, Neutral}

// Valid reports whether e is a known label.
func (e Emotion) Valid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}
