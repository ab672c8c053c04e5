package rpc

import (
	"math"
	"strings"
	"time"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/fault"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

// maxServoID is the highest servo id of the robot body.
const maxServoID = sotapb.ServoID_HEAD_R

// toPose translates a wire pose into device servo targets. Servos with the
// unspecified id are dropped.
func toPose(op string, p *sotapb.Pose) (device.Pose, error) {
	if p == nil {
		return device.Pose{}, fault.Errorf(fault.InvalidArgument, op, "pose is required")
	}
	var out device.Pose
	for _, s := range p.Servos {
		if s == nil || s.Id == sotapb.ServoID_SERVO_ID_UNSPECIFIED {
			continue
		}
		if s.Id < 0 || s.Id > maxServoID {
			return device.Pose{}, fault.Errorf(fault.InvalidArgument, op, "servo id %d out of range", s.Id)
		}
		if s.Angle < math.MinInt16 || s.Angle > math.MaxInt16 {
			return device.Pose{}, fault.Errorf(fault.InvalidArgument, op, "servo %s angle %d out of range", s.Id, s.Angle)
		}
		out.IDs = append(out.IDs, byte(s.Id))
		out.Angles = append(out.Angles, int16(s.Angle))
	}
	if led := p.GetLed(); led != nil {
		l, err := toLED(op, led)
		if err != nil {
			return device.Pose{}, err
		}
		out.LED = &l
	}
	return out, nil
}

func toLED(op string, s *sotapb.LedState) (device.LED, error) {
	var (
		led device.LED
		err error
	)
	if led.LeftEye, err = toRGB(op, "left_eye", s.LeftEye); err != nil {
		return led, err
	}
	if led.RightEye, err = toRGB(op, "right_eye", s.RightEye); err != nil {
		return led, err
	}
	if led.PowerButton, err = toRGB(op, "power_button", s.PowerButton); err != nil {
		return led, err
	}
	if s.Mouth < 0 || s.Mouth > math.MaxUint8 {
		return led, fault.Errorf(fault.InvalidArgument, op, "mouth brightness %d out of range 0..255", s.Mouth)
	}
	led.Mouth = uint8(s.Mouth)
	return led, nil
}

func toRGB(op, field string, c *sotapb.Color) (device.RGB, error) {
	if c == nil {
		return device.RGB{}, nil
	}
	for _, v := range [...]int32{c.Red, c.Green, c.Blue} {
		if v < 0 || v > math.MaxUint8 {
			return device.RGB{}, fault.Errorf(fault.InvalidArgument, op, "%s component %d out of range 0..255", field, v)
		}
	}
	return device.RGB{R: uint8(c.Red), G: uint8(c.Green), B: uint8(c.Blue)}, nil
}

// fromPositions pairs read servo angles with the default id list.
func fromPositions(op string, ids []byte, angles []int16) (*sotapb.Pose, error) {
	if len(ids) != len(angles) {
		return nil, fault.Errorf(fault.InvalidArgument, op, "device reported %d servo ids but %d positions", len(ids), len(angles))
	}
	pose := &sotapb.Pose{Servos: make([]*sotapb.Servo, len(ids))}
	for i, id := range ids {
		pose.Servos[i] = &sotapb.Servo{Id: sotapb.ServoID(id), Angle: int32(angles[i])}
	}
	return pose, nil
}

// millis converts a non-negative millisecond field.
func millis(op, field string, ms int32) (time.Duration, error) {
	if ms < 0 {
		return 0, fault.Errorf(fault.InvalidArgument, op, "%s must not be negative, got %d", field, ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func requireText(op, field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fault.Errorf(fault.InvalidArgument, op, "%s is required", field)
	}
	return nil
}

// speechParams returns nil when no config was sent so the device uses its
// defaults.
func speechParams(c *sotapb.SpeechConfig) *device.SpeechParams {
	if c == nil {
		return nil
	}
	return &device.SpeechParams{
		Rate:       int(c.SpeechRate),
		Pitch:      int(c.Pitch),
		Intonation: int(c.Intonation),
	}
}

// setLanguage applies code through an optional capability. A missing
// capability or an empty code leaves the device language unchanged.
func setLanguage(set func(code string) error, code string) error {
	if set == nil || code == "" {
		return nil
	}
	return set(code)
}

func fromRecognition(r *device.Recognition) *sotapb.RecognitionResult {
	if r == nil {
		return &sotapb.RecognitionResult{}
	}
	out := &sotapb.RecognitionResult{
		Recognized:   r.Recognized,
		BasicResult:  r.Basic,
		SentenceList: make([]*sotapb.Sentence, 0, len(r.Sentences)),
	}
	for _, s := range r.Sentences {
		ps := &sotapb.Sentence{Score: int32(s.Score), WordList: make([]*sotapb.Word, 0, len(s.Words))}
		for _, w := range s.Words {
			ps.WordList = append(ps.WordList, &sotapb.Word{Labels: w.Labels, Types: w.Types})
		}
		out.SentenceList = append(out.SentenceList, ps)
	}
	return out
}

func fromAnswer(a string) sotapb.YesNoAnswer {
	switch a {
	case device.AnswerYes:
		return sotapb.YesNoAnswer_YES
	case device.AnswerNo:
		return sotapb.YesNoAnswer_NO
	default:
		return sotapb.YesNoAnswer_YES_NO_ANSWER_UNSPECIFIED
	}
}

// optional returns nil for an empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
