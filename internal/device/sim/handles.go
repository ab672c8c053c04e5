package sim

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/phonetic"
	"github.com/MrWong99/sotabridge/pkg/audio"
)

type motion struct {
	r *Robot
}

func (m *motion) InitRobot() error {
	if err := m.r.enter("InitRobot"); err != nil {
		return err
	}
	if m.r.opts.InitErr != nil {
		return m.r.opts.InitErr
	}
	m.r.mu.Lock()
	defer m.r.mu.Unlock()
	m.r.moveStart, m.r.moveEnd = time.Time{}, time.Time{}
	return nil
}

func (m *motion) ServoOn() error {
	if err := m.r.enter("ServoOn"); err != nil {
		return err
	}
	m.r.mu.Lock()
	m.r.servoOn = true
	m.r.mu.Unlock()
	return nil
}

func (m *motion) ServoOff() error {
	if err := m.r.enter("ServoOff"); err != nil {
		return err
	}
	m.r.mu.Lock()
	m.r.servoOn = false
	m.r.mu.Unlock()
	return nil
}

func (m *motion) Play(p device.Pose, d time.Duration) (bool, error) {
	if err := m.r.enter("Play"); err != nil {
		return false, err
	}
	if len(p.IDs) != len(p.Angles) {
		return false, errors.New("sim: pose ids and angles differ in length")
	}
	for _, id := range p.IDs {
		if !knownID(id) {
			return false, nil
		}
	}

	m.r.mu.Lock()
	defer m.r.mu.Unlock()
	now := time.Now()
	m.r.from = m.r.positionsLocked(now)
	for i, id := range p.IDs {
		m.r.target[id] = p.Angles[i]
	}
	cp := device.Pose{
		IDs:    append([]byte(nil), p.IDs...),
		Angles: append([]int16(nil), p.Angles...),
	}
	if p.LED != nil {
		led := *p.LED
		cp.LED = &led
	}
	m.r.lastPose = &cp
	m.r.moveStart, m.r.moveEnd = now, now.Add(d)
	return true, nil
}

func (m *motion) WaitEndInterpAll() error {
	if err := m.r.enter("WaitEndInterpAll"); err != nil {
		return err
	}
	m.r.mu.Lock()
	remaining := time.Until(m.r.moveEnd)
	m.r.mu.Unlock()
	if remaining > 0 {
		time.Sleep(remaining)
	}
	return nil
}

func (m *motion) IsEndInterpAll() (bool, error) {
	if err := m.r.enter("IsEndInterpAll"); err != nil {
		return false, err
	}
	m.r.mu.Lock()
	defer m.r.mu.Unlock()
	return !time.Now().Before(m.r.moveEnd), nil
}

func (m *motion) ReadPositions() ([]int16, error) {
	if err := m.r.enter("ReadPositions"); err != nil {
		return nil, err
	}
	m.r.mu.Lock()
	defer m.r.mu.Unlock()
	pos := m.r.positionsLocked(time.Now())
	out := make([]int16, len(DefaultIDs))
	for i, id := range DefaultIDs {
		out[i] = pos[id]
	}
	return out, nil
}

func (m *motion) DefaultIDs() ([]byte, error) {
	if err := m.r.enter("DefaultIDs"); err != nil {
		return nil, err
	}
	return append([]byte(nil), DefaultIDs...), nil
}

func (m *motion) BatteryVoltage() (int, error) {
	if err := m.r.enter("BatteryVoltage"); err != nil {
		return 0, err
	}
	return m.r.opts.BatteryMillivolts, nil
}

func (m *motion) IsCharging() (bool, error) {
	if err := m.r.enter("IsCharging"); err != nil {
		return false, err
	}
	m.r.mu.Lock()
	defer m.r.mu.Unlock()
	return m.r.charging, nil
}

func (m *motion) Buttons() (device.Buttons, error) {
	if err := m.r.enter("Buttons"); err != nil {
		return device.Buttons{}, err
	}
	m.r.mu.Lock()
	defer m.r.mu.Unlock()
	return m.r.buttons, nil
}

func (m *motion) SetCollisionDetection(enabled bool) error {
	if err := m.r.enter("SetCollisionDetection"); err != nil {
		return err
	}
	m.r.mu.Lock()
	m.r.collision = enabled
	m.r.mu.Unlock()
	return nil
}

func (m *motion) SetMouthLEDVoiceSync(enabled bool) error {
	if err := m.r.enter("SetMouthLEDVoiceSync"); err != nil {
		return err
	}
	m.r.mu.Lock()
	m.r.mouthSync = enabled
	m.r.mu.Unlock()
	return nil
}

// positionsLocked interpolates every servo linearly between the pose at
// moveStart and the target. Callers hold r.mu.
func (r *Robot) positionsLocked(now time.Time) map[byte]int16 {
	out := make(map[byte]int16, len(r.target))
	span := r.moveEnd.Sub(r.moveStart)
	elapsed := now.Sub(r.moveStart)
	for id, to := range r.target {
		if span <= 0 || elapsed >= span {
			out[id] = to
			continue
		}
		from := r.from[id]
		frac := float64(elapsed) / float64(span)
		out[id] = from + int16(float64(int(to)-int(from))*frac)
	}
	return out
}

// CollisionDetection reports the collision detection flag.
func (r *Robot) CollisionDetection() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collision
}

// MouthLEDVoiceSync reports the mouth LED voice sync flag.
func (r *Robot) MouthLEDVoiceSync() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mouthSync
}

// ServoPowered reports whether servo torque is on.
func (r *Robot) ServoPowered() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.servoOn
}

func knownID(id byte) bool {
	for _, d := range DefaultIDs {
		if d == id {
			return true
		}
	}
	return false
}

type expressive struct {
	r *Robot
}

func (e *expressive) Say(text, scene string, params *device.SpeechParams) error {
	if err := e.r.enter("Say"); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("sim: nothing to say")
	}
	e.r.mu.Lock()
	e.r.said = append(e.r.said, text)
	if scene != "" {
		e.r.scenes = append(e.r.scenes, scene)
	}
	e.r.mu.Unlock()
	time.Sleep(e.r.speechDuration(text, params))
	return nil
}

func (e *expressive) PlayScene(scene string, d time.Duration) error {
	if err := e.r.enter("PlayScene"); err != nil {
		return err
	}
	e.r.mu.Lock()
	defer e.r.mu.Unlock()
	now := time.Now()
	e.r.scenes = append(e.r.scenes, scene)
	e.r.from = e.r.positionsLocked(now)
	e.r.moveStart, e.r.moveEnd = now, now.Add(d)
	return nil
}

// Scenes returns every scene played so far.
func (r *Robot) Scenes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.scenes...)
}

func (r *Robot) speechDuration(text string, params *device.SpeechParams) time.Duration {
	rate := 100
	if params != nil && params.Rate > 0 {
		rate = params.Rate
	}
	return time.Duration(utf8.RuneCountInString(text)) * r.opts.SpeechRate * 100 / time.Duration(rate)
}

type recognizer struct {
	r *Robot
}

func (s *recognizer) Recognize(timeout time.Duration) (*device.Recognition, error) {
	if err := s.r.enter("Recognize"); err != nil {
		return nil, err
	}
	u, ok := s.r.listen(timeout)
	if !ok {
		return nil, nil
	}
	sentence := device.Sentence{Score: 90}
	for _, tok := range strings.Fields(u) {
		sentence.Words = append(sentence.Words, device.Word{
			Labels: []string{tok},
			Types:  []string{"word"},
		})
	}
	return &device.Recognition{
		Recognized: true,
		Basic:      u,
		Sentences:  []device.Sentence{sentence},
	}, nil
}

// attempt listens up to retries+1 times and returns the first utterance that
// extract accepts.
func (s *recognizer) attempt(timeout time.Duration, retries int, extract func(string) (string, bool)) string {
	for range retries + 1 {
		u, ok := s.r.listen(timeout)
		if !ok {
			continue
		}
		if v, ok := extract(u); ok {
			return v
		}
	}
	return ""
}

func (s *recognizer) YesOrNo(timeout time.Duration, retries int) (string, error) {
	if err := s.r.enter("YesOrNo"); err != nil {
		return "", err
	}
	return s.attempt(timeout, retries, func(u string) (string, bool) {
		label, _, ok := s.r.matcher.Classify(u, phonetic.YesNo)
		return label, ok
	}), nil
}

var namePrefixes = []string{"my name is ", "i am ", "i'm ", "call me ", "it's "}

func extractName(u string) (string, bool) {
	u = strings.TrimSpace(u)
	lower := strings.ToLower(u)
	for _, p := range namePrefixes {
		if strings.HasPrefix(lower, p) {
			u = strings.TrimSpace(u[len(p):])
			break
		}
	}
	u = strings.TrimRight(u, ".!? ")
	return u, u != ""
}

func (s *recognizer) Name(timeout time.Duration, retries int) (string, error) {
	if err := s.r.enter("Name"); err != nil {
		return "", err
	}
	return s.attempt(timeout, retries, extractName), nil
}

func (s *recognizer) Names(timeout time.Duration, retries int) ([]string, error) {
	if err := s.r.enter("Names"); err != nil {
		return nil, err
	}
	joined := s.attempt(timeout, retries, extractName)
	if joined == "" {
		return nil, nil
	}
	var names []string
	for _, part := range strings.FieldsFunc(strings.ReplaceAll(joined, " and ", ","), func(r rune) bool { return r == ',' }) {
		if n := strings.TrimSpace(part); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

func (s *recognizer) Response(timeout time.Duration, retries int) (string, error) {
	if err := s.r.enter("Response"); err != nil {
		return "", err
	}
	return s.attempt(timeout, retries, func(u string) (string, bool) {
		u = strings.TrimSpace(u)
		return u, u != ""
	}), nil
}

func (s *recognizer) SetLang(code string) error {
	if err := s.r.enter("SetLang"); err != nil {
		return err
	}
	if code == "" {
		return errors.New("sim: empty language code")
	}
	s.r.mu.Lock()
	s.r.lang = code
	s.r.mu.Unlock()
	return nil
}

type synthesizer struct {
	r *Robot
}

func (s *synthesizer) Synthesize(text string, params *device.SpeechParams) ([]byte, error) {
	if err := s.r.enter("Synthesize"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("sim: nothing to synthesize")
	}
	freq := 220.0
	if params != nil && params.Pitch > 0 {
		freq = freq * float64(params.Pitch) / 100
	}
	pcm := audio.Tone(freq, s.r.speechDuration(text, params), Format.SampleRate)
	return audio.Encode(pcm, Format), nil
}

func (s *synthesizer) SetLocalize(code string) error {
	if err := s.r.enter("SetLocalize"); err != nil {
		return err
	}
	if code == "" {
		return errors.New("sim: empty locale")
	}
	s.r.mu.Lock()
	s.r.localize = code
	s.r.mu.Unlock()
	return nil
}

type wavePlayer struct {
	r *Robot
}

func (w *wavePlayer) PlayFile(path string, wait bool) (device.Player, error) {
	if err := w.r.enter("PlayFile"); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, device.ErrPlaybackRejected
	}
	return w.play(data, wait)
}

func (w *wavePlayer) PlayBytes(wav []byte, wait bool) (device.Player, error) {
	if err := w.r.enter("PlayBytes"); err != nil {
		return nil, err
	}
	return w.play(wav, wait)
}

func (w *wavePlayer) play(wav []byte, wait bool) (device.Player, error) {
	d, err := audio.Duration(wav)
	if err != nil {
		return nil, device.ErrPlaybackRejected
	}
	p := &player{r: w.r, end: time.Now().Add(d)}
	if wait {
		time.Sleep(d)
	}
	return p, nil
}

type player struct {
	r *Robot

	mu      sync.Mutex
	end     time.Time
	stopped bool
}

func (p *player) IsPlaying() bool {
	_ = p.r.check("Player.IsPlaying")
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.stopped && time.Now().Before(p.end)
}

func (p *player) Stop() {
	_ = p.r.check("Player.Stop")
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
}

// recorder simulates the microphone. It is safe for concurrent use and is
// not bound to the device thread.
type recorder struct {
	mu     sync.Mutex
	active bool
	path   string
	start  time.Time
	limit  time.Duration
	timer  *time.Timer
}

func (c *recorder) Start(path string, d time.Duration) (bool, error) {
	if d <= 0 || path == "" {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return false, nil
	}
	c.active, c.path, c.start, c.limit = true, path, time.Now(), d
	c.timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		_ = c.finishLocked()
	})
	return true, nil
}

func (c *recorder) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return nil
	}
	return c.finishLocked()
}

func (c *recorder) IsRecording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// finishLocked writes the captured audio. Callers hold c.mu.
func (c *recorder) finishLocked() error {
	if !c.active {
		return nil
	}
	c.active = false
	c.timer.Stop()
	elapsed := min(time.Since(c.start), c.limit)
	pcm := audio.Tone(330, elapsed, Format.SampleRate)
	return os.WriteFile(c.path, audio.Encode(pcm, Format), 0o644)
}
