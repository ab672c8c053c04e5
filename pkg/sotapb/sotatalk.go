package sotapb

// SpeechConfig tunes synthesized speech. LanguageCode is honoured only by
// device builds that support switching the synthesis language.
type SpeechConfig struct {
	SpeechRate   int32
	Pitch        int32
	Intonation   int32
	LanguageCode *string
}

func (x *SpeechConfig) GetLanguageCode() string {
	if x == nil || x.LanguageCode == nil {
		return ""
	}
	return *x.LanguageCode
}

func (x *SpeechConfig) AppendWire(b []byte) []byte {
	b = appendInt32(b, 1, x.SpeechRate)
	b = appendInt32(b, 2, x.Pitch)
	b = appendInt32(b, 3, x.Intonation)
	return appendOptString(b, 4, x.LanguageCode)
}

func (x *SpeechConfig) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.SpeechRate, err = f.int32()
		case 2:
			x.Pitch, err = f.int32()
		case 3:
			x.Intonation, err = f.int32()
		case 4:
			x.LanguageCode, err = f.optString()
		}
		return err
	})
}

type SayWithMotionRequest struct {
	Text   string
	Scene  *string
	Config *SpeechConfig
}

func (x *SayWithMotionRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, x.Text)
	b = appendOptString(b, 2, x.Scene)
	if x.Config != nil {
		b = appendMessage(b, 3, x.Config)
	}
	return b
}

func (x *SayWithMotionRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.Text, err = f.string()
		case 2:
			x.Scene, err = f.optString()
		case 3:
			x.Config = new(SpeechConfig)
			err = f.message(x.Config)
		}
		return err
	})
}

type SayWithMotionResponse struct{ empty }

type PlaySceneRequest struct {
	Scene  string
	TimeMs int32
}

func (x *PlaySceneRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, x.Scene)
	return appendInt32(b, 2, x.TimeMs)
}

func (x *PlaySceneRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.Scene, err = f.string()
		case 2:
			x.TimeMs, err = f.int32()
		}
		return err
	})
}

type PlaySceneResponse struct{ empty }
type StartIdlingRequest struct{ empty }
type StartIdlingResponse struct{ empty }
type StopIdlingRequest struct{ empty }
type StopIdlingResponse struct{ empty }

type GetTTSDataRequest struct {
	Text   string
	Config *SpeechConfig
}

func (x *GetTTSDataRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, x.Text)
	if x.Config != nil {
		b = appendMessage(b, 2, x.Config)
	}
	return b
}

func (x *GetTTSDataRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.Text, err = f.string()
		case 2:
			x.Config = new(SpeechConfig)
			err = f.message(x.Config)
		}
		return err
	})
}

type GetTTSDataResponse struct {
	AudioData []byte
}

func (x *GetTTSDataResponse) AppendWire(b []byte) []byte {
	return appendBytes(b, 1, x.AudioData)
}

func (x *GetTTSDataResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.AudioData, err = f.bytes()
		}
		return err
	})
}

type RecognizeRequest struct {
	TimeoutMs    int32
	LanguageCode *string
}

func (x *RecognizeRequest) GetLanguageCode() string {
	if x == nil || x.LanguageCode == nil {
		return ""
	}
	return *x.LanguageCode
}

func (x *RecognizeRequest) AppendWire(b []byte) []byte {
	b = appendInt32(b, 1, x.TimeoutMs)
	return appendOptString(b, 2, x.LanguageCode)
}

func (x *RecognizeRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.TimeoutMs, err = f.int32()
		case 2:
			x.LanguageCode, err = f.optString()
		}
		return err
	})
}

type Word struct {
	Labels []string
	Types  []string
}

func (x *Word) AppendWire(b []byte) []byte {
	b = appendRepeatedString(b, 1, x.Labels)
	return appendRepeatedString(b, 2, x.Types)
}

func (x *Word) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) error {
		if f.num != 1 && f.num != 2 {
			return nil
		}
		v, err := f.string()
		if err != nil {
			return err
		}
		if f.num == 1 {
			x.Labels = append(x.Labels, v)
		} else {
			x.Types = append(x.Types, v)
		}
		return nil
	})
}

type Sentence struct {
	Score    int32
	WordList []*Word
}

func (x *Sentence) AppendWire(b []byte) []byte {
	b = appendInt32(b, 1, x.Score)
	for _, w := range x.WordList {
		b = appendMessage(b, 2, w)
	}
	return b
}

func (x *Sentence) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.Score, err = f.int32()
		case 2:
			w := new(Word)
			if err = f.message(w); err == nil {
				x.WordList = append(x.WordList, w)
			}
		}
		return err
	})
}

type RecognitionResult struct {
	Recognized   bool
	BasicResult  string
	SentenceList []*Sentence
}

func (x *RecognitionResult) AppendWire(b []byte) []byte {
	b = appendBool(b, 1, x.Recognized)
	b = appendString(b, 2, x.BasicResult)
	for _, s := range x.SentenceList {
		b = appendMessage(b, 3, s)
	}
	return b
}

func (x *RecognitionResult) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.Recognized, err = f.bool()
		case 2:
			x.BasicResult, err = f.string()
		case 3:
			s := new(Sentence)
			if err = f.message(s); err == nil {
				x.SentenceList = append(x.SentenceList, s)
			}
		}
		return err
	})
}

// RetryRequest is the shape shared by the yes/no, name, names and general
// response recognizers.
type RetryRequest struct {
	TimeoutMs  int32
	RetryCount int32
}

func (x *RetryRequest) AppendWire(b []byte) []byte {
	b = appendInt32(b, 1, x.TimeoutMs)
	return appendInt32(b, 2, x.RetryCount)
}

func (x *RetryRequest) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			x.TimeoutMs, err = f.int32()
		case 2:
			x.RetryCount, err = f.int32()
		}
		return err
	})
}

type RecognizeYesOrNoRequest struct{ RetryRequest }
type RecognizeNameRequest struct{ RetryRequest }
type RecognizeNamesRequest struct{ RetryRequest }
type RecognizeGeneralResponseRequest struct{ RetryRequest }

type YesNoAnswer int32

const (
	YesNoAnswer_YES_NO_ANSWER_UNSPECIFIED YesNoAnswer = 0
	YesNoAnswer_YES                       YesNoAnswer = 1
	YesNoAnswer_NO                        YesNoAnswer = 2
)

func (x YesNoAnswer) String() string {
	switch x {
	case YesNoAnswer_YES:
		return "YES"
	case YesNoAnswer_NO:
		return "NO"
	default:
		return "YES_NO_ANSWER_UNSPECIFIED"
	}
}

type RecognizeYesOrNoResponse struct {
	Answer YesNoAnswer
}

func (x *RecognizeYesOrNoResponse) AppendWire(b []byte) []byte {
	return appendInt32(b, 1, int32(x.Answer))
}

func (x *RecognizeYesOrNoResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		v, err := f.int32()
		x.Answer = YesNoAnswer(v)
		return err
	})
}

type RecognizeNameResponse struct {
	Name *string
}

func (x *RecognizeNameResponse) AppendWire(b []byte) []byte {
	return appendOptString(b, 1, x.Name)
}

func (x *RecognizeNameResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.Name, err = f.optString()
		}
		return err
	})
}

type RecognizeNamesResponse struct {
	Names []string
}

func (x *RecognizeNamesResponse) AppendWire(b []byte) []byte {
	return appendRepeatedString(b, 1, x.Names)
}

func (x *RecognizeNamesResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		v, err := f.string()
		if err == nil {
			x.Names = append(x.Names, v)
		}
		return err
	})
}

type RecognizeGeneralResponseResponse struct {
	Response *string
}

func (x *RecognizeGeneralResponseResponse) AppendWire(b []byte) []byte {
	return appendOptString(b, 1, x.Response)
}

func (x *RecognizeGeneralResponseResponse) ConsumeWire(b []byte) error {
	return consumeFields(b, func(f field) (err error) {
		if f.num == 1 {
			x.Response, err = f.optString()
		}
		return err
	})
}
